//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
)

const (
	ValidPhoto   = "cat.png"
	InvalidPhoto = "not_a_photo.txt"
)

// GenerateName returns prefix plus a short random suffix so live runs do not
// collide with records left by earlier runs.
func GenerateName(prefix string) string {
	bytes := make([]byte, 4)
	_, _ = rand.Read(bytes)
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// GetAuthKey obtains an auth key and fails the test if that is not possible.
func GetAuthKey(ctx context.Context, target *Target) string {
	res, err := target.Client.GetAPIKey(ctx, target.Email, target.Password)
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Status).To(Equal(http.StatusOK), "obtaining auth key: %s", res.Message())

	key := res.Key()
	Expect(key).NotTo(BeEmpty())
	return key
}

// MyPets lists the pets owned by the authenticated account.
func MyPets(ctx context.Context, client *petfriends.Client, authKey string) []petfriends.Pet {
	res, err := client.ListPets(ctx, authKey, petfriends.FilterMyPets)
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Status).To(Equal(http.StatusOK), "listing my pets: %s", res.Message())

	pets, err := res.Pets()
	Expect(err).NotTo(HaveOccurred())
	return pets
}

// EnsureMyPet returns the first pet of the account, creating one with a
// photo (and scheduling its deletion) when the account has none.
func EnsureMyPet(ctx context.Context, client *petfriends.Client, authKey string, cfg *TestConfig) petfriends.Pet {
	if pets := MyPets(ctx, client, authKey); len(pets) > 0 {
		return pets[0]
	}

	GinkgoWriter.Printf("Account has no pets, creating one\n")
	res, err := client.AddNewPetFromFile(ctx, authKey, "Superkot", "cat", "3", cfg.ImagePath(ValidPhoto))
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Status).To(Equal(http.StatusOK), "creating fallback pet: %s", res.Message())

	pet, err := res.Pet()
	Expect(err).NotTo(HaveOccurred())
	DeleteOnCleanup(ctx, client, authKey, pet.ID)

	return *pet
}

// CreatePetWithCleanup creates a pet without a photo and schedules its deletion.
func CreatePetWithCleanup(ctx context.Context, client *petfriends.Client, authKey, name, animalType, age string) petfriends.Pet {
	res, err := client.CreatePetSimple(ctx, authKey, name, animalType, age)
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Status).To(Equal(http.StatusOK), "creating pet: %s", res.Message())

	pet, err := res.Pet()
	Expect(err).NotTo(HaveOccurred())
	GinkgoWriter.Printf("Created pet with ID: %s\n", pet.ID)
	DeleteOnCleanup(ctx, client, authKey, pet.ID)

	return *pet
}

// DeleteOnCleanup schedules deletion of a pet whether the test passes or fails.
// A 400 means the test already deleted the pet itself.
func DeleteOnCleanup(ctx context.Context, client *petfriends.Client, authKey, petID string) {
	DeferCleanup(func() {
		res, err := client.DeletePet(ctx, authKey, petID)
		switch {
		case err != nil:
			GinkgoWriter.Printf("Warning: failed to delete pet %s: %v\n", petID, err)
		case res.Status == http.StatusOK || res.Status == http.StatusBadRequest:
			GinkgoWriter.Printf("Cleaned up pet: %s (status %d)\n", petID, res.Status)
		default:
			GinkgoWriter.Printf("Warning: unexpected status deleting pet %s: %s\n", petID, res)
		}
	})
}
