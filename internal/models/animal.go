package models

import "time"

// AnimalStatus is a denormalized cache over the animal's adoption set.
// Every write path derives it through DeriveAnimalStatus.
type AnimalStatus string

const (
	AnimalAvailable AnimalStatus = "available"
	AnimalAdoption  AnimalStatus = "adoption"
	AnimalAdopted   AnimalStatus = "adopted"
)

type Animal struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:50;not null" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"` // sanitized HTML
	AgeMonths   int          `gorm:"not null" json:"age_months"`
	Breed       string       `gorm:"size:100;not null" json:"breed"`
	Gender      string       `gorm:"size:20;not null" json:"gender"`
	Status      AnimalStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`

	Images    []Image    `gorm:"foreignKey:AnimalID" json:"images,omitempty"`
	Adoptions []Adoption `gorm:"foreignKey:AnimalID" json:"-"`
}

// StatusRank orders statuses for listings: available animals first,
// adopted ones last, unknown values after everything.
func StatusRank(s AnimalStatus) int {
	switch s {
	case AnimalAvailable:
		return 0
	case AnimalAdoption:
		return 1
	case AnimalAdopted:
		return 2
	default:
		return 3
	}
}

// DeriveAnimalStatus is the authoritative recompute rule: an accepted
// adoption makes the animal adopted, otherwise any pending one keeps it
// in adoption, otherwise it is available.
func DeriveAnimalStatus(adoptions []AdoptionStatus) AnimalStatus {
	status := AnimalAvailable
	for _, a := range adoptions {
		switch a {
		case AdoptionAccepted:
			return AnimalAdopted
		case AdoptionPending:
			status = AnimalAdoption
		}
	}
	return status
}

// AnimalListItem is an Animal annotated with its adoption request count,
// as produced by the paginated listing query.
type AnimalListItem struct {
	Animal
	AdoptionCount int64 `json:"adoption_count"`
}

// Page is one page of the sorted animal listing.
type Page struct {
	Items      []AnimalListItem `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}
