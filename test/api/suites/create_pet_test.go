package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/petfriends-qa/petfriends-api-tests/test/api"
)

var _ = Describe("Creating pets", func() {
	var authKey string

	BeforeEach(func() {
		authKey = api.GetAuthKey(ctx, target)
	})

	Context("When the data is valid", func() {
		It("should create a pet with a photo", func() {
			name := api.GenerateName("Kote")
			res, err := target.Client.AddNewPetFromFile(ctx, authKey, name, "mongrel", "3", config.ImagePath(api.ValidPhoto))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(http.StatusOK), res.Message())
			api.DeleteOnCleanup(ctx, target.Client, authKey, res.Get("id").String())

			Expect(res.Get("name").String()).To(Equal(name))
			Expect(res.Get("pet_photo").String()).NotTo(BeEmpty())
		})

		It("should create a pet without a photo", func() {
			res, err := target.Client.CreatePetSimple(ctx, authKey, "Cat", "stray", "3")

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(http.StatusOK), res.Message())
			api.DeleteOnCleanup(ctx, target.Client, authKey, res.Get("id").String())

			pet, err := res.Pet()
			Expect(err).NotTo(HaveOccurred())
			Expect(pet.Name).To(Equal("Cat"))
			Expect(pet.ID).NotTo(BeEmpty())
		})
	})

	DescribeTable("should be rejected by the service when the data is invalid",
		func(name, animalType, age string) {
			res, err := target.Client.CreatePetSimple(ctx, authKey, name, animalType, age)
			Expect(err).NotTo(HaveOccurred())

			if res.Status == http.StatusOK {
				// keep the account clean even when the service accepts it
				api.DeleteOnCleanup(ctx, target.Client, authKey, res.Get("id").String())
			}
			Expect(res.Status).To(Equal(http.StatusBadRequest))
		},
		Entry("blank name, type and age", "", "", ""),
		Entry("negative age", "Koshka", "cat", "-5"),
		Entry("non-numeric age", "Vaska", "cat", "abc"),
	)
})
