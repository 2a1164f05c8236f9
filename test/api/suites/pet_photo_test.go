package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
	"github.com/petfriends-qa/petfriends-api-tests/test/api"
)

var _ = Describe("Pet photos", func() {
	var (
		authKey string
		pet     petfriends.Pet
	)

	BeforeEach(func() {
		authKey = api.GetAuthKey(ctx, target)
		pet = api.EnsureMyPet(ctx, target.Client, authKey, config)
	})

	It("should attach an image to an existing pet", func() {
		res, err := target.Client.SetPhotoFromFile(ctx, authKey, pet.ID, config.ImagePath(api.ValidPhoto))

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusOK), res.Message())
		Expect(res.Get("pet_photo").String()).NotTo(BeEmpty())
	})

	It("should refuse a text file as a photo", func() {
		res, err := target.Client.SetPhotoFromFile(ctx, authKey, pet.ID, config.ImagePath(api.InvalidPhoto))

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusBadRequest))
	})
})
