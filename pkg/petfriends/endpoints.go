package petfriends

import (
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) APIKey() string {
	return "/api/key"
}

// Pet endpoints.
func (e *Endpoints) ListPets() string {
	return "/api/pets"
}

func (e *Endpoints) AddNewPet() string {
	return "/api/pets"
}

func (e *Endpoints) CreatePetSimple() string {
	return "/api/create_pet_simple"
}

func (e *Endpoints) UpdatePet(petID string) string {
	return fmt.Sprintf("/api/pets/%s", url.PathEscape(petID))
}

func (e *Endpoints) DeletePet(petID string) string {
	return fmt.Sprintf("/api/pets/%s", url.PathEscape(petID))
}

func (e *Endpoints) SetPhoto(petID string) string {
	return fmt.Sprintf("/api/pets/set_photo/%s", url.PathEscape(petID))
}
