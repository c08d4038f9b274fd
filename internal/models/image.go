package models

import "path/filepath"

// Image is a content-deduplicated upload. The ID is a generated uuid,
// distinct from the content hash; MD5Hash carries the unique index that
// backstops concurrent uploads of identical bytes.
type Image struct {
	ID       string `gorm:"size:100;primaryKey" json:"id"`
	FileName string `gorm:"size:100;not null" json:"file_name"`
	MimeType string `gorm:"size:100;not null" json:"mime_type"`
	MD5Hash  string `gorm:"size:100;uniqueIndex" json:"md5_hash"`

	AnimalID uint    `gorm:"not null;index" json:"animal_id"`
	Animal   *Animal `gorm:"foreignKey:AnimalID" json:"-"`
}

// StorageFilename derives the on-disk name from the id plus the original
// file extension.
func (i *Image) StorageFilename() string {
	return i.ID + filepath.Ext(i.FileName)
}
