package models

import "time"

// AdoptionStatus values are terminal except pending.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionAccepted AdoptionStatus = "accepted"
	AdoptionRejected AdoptionStatus = "rejected"
	// AdoptionRejectedAdopted marks requests that lost the race when a
	// sibling request was accepted, as opposed to an explicit staff
	// rejection.
	AdoptionRejectedAdopted AdoptionStatus = "rejected_adopted"
)

// Terminal reports whether no further transition is defined for s.
func (s AdoptionStatus) Terminal() bool {
	return s != AdoptionPending
}

type Adoption struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ApplicationDate time.Time      `json:"application_date"`
	Status          AdoptionStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	ContactInfo     string         `gorm:"size:200;not null" json:"contact_info"`

	AnimalID uint    `gorm:"not null;index" json:"animal_id"`
	Animal   *Animal `gorm:"foreignKey:AnimalID" json:"-"`
	UserID   uint    `gorm:"not null;index" json:"user_id"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
