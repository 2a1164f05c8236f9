package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/petfriends-api-tests/test/api"
)

var _ = Describe("Updating pets", func() {
	It("should update name, type and age of my first pet", func() {
		authKey := api.GetAuthKey(ctx, target)
		pet := api.EnsureMyPet(ctx, target.Client, authKey, config)

		res, err := target.Client.UpdatePetInfo(ctx, authKey, pet.ID, "Murzik", "Kote", "5")

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusOK), res.Message())
		Expect(res.Get("name").String()).To(Equal("Murzik"))
	})
})
