package api

import (
	"github.com/onsi/ginkgo/v2"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/httpclient"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends/petfriendstest"
)

// Target is the service a suite run talks to together with the credentials to use.
type Target struct {
	Client       *petfriends.Client
	Email        string
	Password     string
	InvalidEmail string

	stub *petfriendstest.Server
}

// StartTarget connects to the live service or starts a stand-in seeded with
// one pet of the primary account and one pet of another account.
func StartTarget(cfg *TestConfig) *Target {
	opts := []petfriends.Option{
		petfriends.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout)),
		petfriends.WithLogger(newGinkgoLogger(cfg)),
	}

	if cfg.Live {
		ginkgo.GinkgoWriter.Printf("Running scenarios against %s\n", cfg.BaseURL)
		return &Target{
			Client:       petfriends.NewClient(cfg.BaseURL, opts...),
			Email:        cfg.Email,
			Password:     cfg.Password,
			InvalidEmail: cfg.InvalidEmail,
		}
	}

	stub := petfriendstest.NewServer()
	stub.SeedPet("Barsik", "cat", "2")
	stub.SeedForeignPet("Sharik", "dog", "4")
	ginkgo.GinkgoWriter.Printf("Running scenarios against stand-in at %s\n", stub.URL())

	return &Target{
		Client:       petfriends.NewClient(stub.URL(), opts...),
		Email:        stub.Email,
		Password:     stub.Password,
		InvalidEmail: cfg.InvalidEmail,
		stub:         stub,
	}
}

// Close stops the stand-in, if one was started.
func (t *Target) Close() {
	if t.stub != nil {
		t.stub.Close()
	}
}
