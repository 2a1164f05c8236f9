package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
	"github.com/petfriends-qa/petfriends-api-tests/test/api"
)

var _ = Describe("Listing pets", func() {
	var authKey string

	BeforeEach(func() {
		authKey = api.GetAuthKey(ctx, target)
		// my_pets must be non-empty for the filter scenarios to mean anything
		api.EnsureMyPet(ctx, target.Client, authKey, config)
	})

	DescribeTable("should return a non-empty list for accepted filters",
		func(filter petfriends.Filter) {
			res, err := target.Client.ListPets(ctx, authKey, filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(http.StatusOK))

			pets, err := res.Pets()
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).NotTo(BeEmpty())
		},
		Entry("all pets", petfriends.FilterAll),
		Entry("only my pets", petfriends.FilterMyPets),
	)

	It("should reject an unrecognized filter", func() {
		res, err := target.Client.ListPets(ctx, authKey, petfriends.Filter("asdf"))

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusBadRequest))
	})
})
