package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/petfriends-api-tests/test/api"
)

var _ = Describe("Deleting pets", func() {
	It("should not delete the same pet twice", func() {
		authKey := api.GetAuthKey(ctx, target)
		pet := api.CreatePetWithCleanup(ctx, target.Client, authKey, api.GenerateName("Superkot"), "cat", "3")

		first, err := target.Client.DeletePet(ctx, authKey, pet.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Status).To(Equal(http.StatusOK))

		second, err := target.Client.DeletePet(ctx, authKey, pet.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Status).To(Equal(http.StatusBadRequest))
	})

	It("should remove the pet from my list", func() {
		authKey := api.GetAuthKey(ctx, target)
		pet := api.CreatePetWithCleanup(ctx, target.Client, authKey, api.GenerateName("Ghost"), "cat", "1")

		res, err := target.Client.DeletePet(ctx, authKey, pet.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusOK))

		ids := make([]string, 0)
		for _, p := range api.MyPets(ctx, target.Client, authKey) {
			ids = append(ids, p.ID)
		}
		Expect(ids).NotTo(ContainElement(pet.ID))
	})
})
