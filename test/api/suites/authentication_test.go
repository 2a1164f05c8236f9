package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Authentication", func() {
	Context("When requesting an API key", func() {
		It("should return a key for valid credentials", func() {
			res, err := target.Client.GetAPIKey(ctx, target.Email, target.Password)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(http.StatusOK))
			Expect(res.Has("key")).To(BeTrue())
			Expect(res.Key()).NotTo(BeEmpty())
		})

		It("should refuse an unknown email", func() {
			res, err := target.Client.GetAPIKey(ctx, target.InvalidEmail, target.Password)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(http.StatusForbidden))
			Expect(res.Has("key")).To(BeFalse())
		})

		It("should refuse an unknown email with an empty password", func() {
			res, err := target.Client.GetAPIKey(ctx, target.InvalidEmail, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(http.StatusForbidden))
			Expect(res.Has("key")).To(BeFalse())
		})
	})
})
