package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAnimalStatus(t *testing.T) {
	tests := []struct {
		name      string
		adoptions []AdoptionStatus
		want      AnimalStatus
	}{
		{"no adoptions", nil, AnimalAvailable},
		{"single pending", []AdoptionStatus{AdoptionPending}, AnimalAdoption},
		{"accepted wins over pending", []AdoptionStatus{AdoptionPending, AdoptionAccepted, AdoptionPending}, AnimalAdopted},
		{"only rejected", []AdoptionStatus{AdoptionRejected, AdoptionRejectedAdopted}, AnimalAvailable},
		{"rejected plus pending", []AdoptionStatus{AdoptionRejected, AdoptionPending}, AnimalAdoption},
		{"accepted alone", []AdoptionStatus{AdoptionAccepted}, AnimalAdopted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAnimalStatus(tt.adoptions))
		})
	}
}

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusRank(AnimalAvailable))
	assert.Equal(t, 1, StatusRank(AnimalAdoption))
	assert.Equal(t, 2, StatusRank(AnimalAdopted))
	assert.Equal(t, 3, StatusRank(AnimalStatus("bogus")))
}

func TestAdoptionStatusTerminal(t *testing.T) {
	assert.False(t, AdoptionPending.Terminal())
	assert.True(t, AdoptionAccepted.Terminal())
	assert.True(t, AdoptionRejected.Terminal())
	assert.True(t, AdoptionRejectedAdopted.Terminal())
}

func TestImageStorageFilename(t *testing.T) {
	img := Image{ID: "7e6a7c2e", FileName: "kitten photo.JPG"}
	assert.Equal(t, "7e6a7c2e.JPG", img.StorageFilename())

	noExt := Image{ID: "7e6a7c2e", FileName: "kitten"}
	assert.Equal(t, "7e6a7c2e", noExt.StorageFilename())
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Anna", LastName: "Petrova"}
	assert.Equal(t, "Petrova Anna", u.FullName())

	u.MiddleName = "Ivanovna"
	assert.Equal(t, "Petrova Anna Ivanovna", u.FullName())
}
