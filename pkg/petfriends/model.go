package petfriends

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Filter selects which pets ListPets returns. The service accepts only
// FilterAll and FilterMyPets; other values are passed through and rejected remotely.
type Filter string

const (
	FilterAll    Filter = ""
	FilterMyPets Filter = "my_pets"
)

// Pet is the service's representation of an animal entry.
type Pet struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	AnimalType string     `json:"animal_type"`
	Age        FlexString `json:"age"`
	PetPhoto   string     `json:"pet_photo,omitempty"`
	UserID     string     `json:"user_id,omitempty"`
	CreatedAt  FlexString `json:"created_at,omitempty"`
}

// PetList is the body of a successful list call.
type PetList struct {
	Pets []Pet `json:"pets"`
}

// FlexString decodes from a JSON string, number or null. The service echoes
// some fields (age, created_at) in whatever form they were stored.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("flex string: %w", err)
		}
		*f = FlexString(n.String())
		return nil
	}
}

func (f FlexString) String() string { return string(f) }
