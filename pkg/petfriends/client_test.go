package petfriends_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/httpclient"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/httpclient/mock"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends/petfriendstest"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestClient(t *testing.T) (*petfriends.Client, *petfriendstest.Server) {
	t.Helper()
	srv := petfriendstest.NewServer()
	t.Cleanup(srv.Close)
	return petfriends.NewClient(srv.URL()), srv
}

func authKey(t *testing.T, c *petfriends.Client, srv *petfriendstest.Server) string {
	t.Helper()
	res, err := c.GetAPIKey(context.Background(), srv.Email, srv.Password)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	return res.Key()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGetAPIKeyValidCredentials(t *testing.T) {
	c, srv := newTestClient(t)

	res, err := c.GetAPIKey(context.Background(), srv.Email, srv.Password)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.True(t, res.Has("key"))
	assert.Equal(t, srv.Key(), res.Key())
}

func TestGetAPIKeyInvalidEmail(t *testing.T) {
	c, srv := newTestClient(t)

	for _, password := range []string{srv.Password, ""} {
		res, err := c.GetAPIKey(context.Background(), "nobody@example.com", password)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, res.Status)
		assert.False(t, res.Has("key"))
		assert.Empty(t, res.Key())
		assert.Contains(t, res.Message(), "403 Forbidden")
	}
}

func TestListPetsFilters(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SeedPet("Barsik", "cat", "2")
	srv.SeedForeignPet("Sharik", "dog", "4")
	key := authKey(t, c, srv)

	all, err := c.ListPets(context.Background(), key, petfriends.FilterAll)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, all.Status)
	assert.EqualValues(t, 2, all.Get("pets.#").Int())

	mine, err := c.ListPets(context.Background(), key, petfriends.FilterMyPets)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, mine.Status)
	pets, err := mine.Pets()
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Barsik", pets[0].Name)

	bad, err := c.ListPets(context.Background(), key, petfriends.Filter("asdf"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, bad.Status)
}

func TestListPetsWithoutKeyIsForbidden(t *testing.T) {
	c, _ := newTestClient(t)

	res, err := c.ListPets(context.Background(), "not-a-key", petfriends.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func TestCreatePetSimple(t *testing.T) {
	c, srv := newTestClient(t)
	key := authKey(t, c, srv)

	res, err := c.CreatePetSimple(context.Background(), key, "Cat", "stray", "3")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	pet, err := res.Pet()
	require.NoError(t, err)
	assert.Equal(t, "Cat", pet.Name)
	assert.Equal(t, "stray", pet.AnimalType)
	assert.Equal(t, petfriends.FlexString("3"), pet.Age)
	assert.NotEmpty(t, pet.ID)
	assert.Empty(t, pet.PetPhoto)
}

func TestCreatePetSimpleRejectedRemotely(t *testing.T) {
	cases := map[string][3]string{
		"blank fields":    {"", "", ""},
		"negative age":    {"Kitty", "cat", "-5"},
		"non-numeric age": {"Vaska", "cat", "abc"},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			c, srv := newTestClient(t)
			key := authKey(t, c, srv)

			res, err := c.CreatePetSimple(context.Background(), key, in[0], in[1], in[2])
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, 0, srv.PetCount())
		})
	}
}

func TestAddNewPetWithPhoto(t *testing.T) {
	c, srv := newTestClient(t)
	key := authKey(t, c, srv)
	path := writeFile(t, "cat.png", pngHeader)

	res, err := c.AddNewPetFromFile(context.Background(), key, "Kote", "mongrel", "3", path)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	assert.Equal(t, "Kote", res.Get("name").String())
	assert.Contains(t, res.Get("pet_photo").String(), "data:image/png;base64,")
}

func TestAddNewPetFromMissingFile(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.AddNewPetFromFile(context.Background(), srv.Key(), "a", "b", "1", filepath.Join(t.TempDir(), "missing.jpg"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, srv.PetCount())
}

func TestUpdatePetInfo(t *testing.T) {
	c, srv := newTestClient(t)
	seeded := srv.SeedPet("Barsik", "cat", "2")
	key := authKey(t, c, srv)

	res, err := c.UpdatePetInfo(context.Background(), key, seeded.ID, "Murzik", "Kote", "5")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Murzik", res.Get("name").String())
	assert.Equal(t, "5", res.Get("age").String())
}

func TestUpdateForeignPetRejected(t *testing.T) {
	c, srv := newTestClient(t)
	foreign := srv.SeedForeignPet("Sharik", "dog", "4")
	key := authKey(t, c, srv)

	res, err := c.UpdatePetInfo(context.Background(), key, foreign.ID, "Mine", "dog", "4")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestSetPhoto(t *testing.T) {
	c, srv := newTestClient(t)
	seeded := srv.SeedPet("Barsik", "cat", "2")
	key := authKey(t, c, srv)

	image := writeFile(t, "cat.png", pngHeader)
	res, err := c.SetPhotoFromFile(context.Background(), key, seeded.ID, image)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.NotEmpty(t, res.Get("pet_photo").String())

	text := writeFile(t, "1.txt", []byte("definitely not a picture\n"))
	res, err = c.SetPhotoFromFile(context.Background(), key, seeded.ID, text)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Message(), "Bad Request")
}

func TestSetPhotoNil(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.SetPhoto(context.Background(), srv.Key(), "id", nil)
	require.ErrorIs(t, err, petfriends.ErrEmptyPhoto)
}

func TestDeletePetTwice(t *testing.T) {
	c, srv := newTestClient(t)
	seeded := srv.SeedPet("Superkot", "cat", "3")
	key := authKey(t, c, srv)

	first, err := c.DeletePet(context.Background(), key, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, first.Status)

	second, err := c.DeletePet(context.Background(), key, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, second.Status)
}

func TestTransportErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	hc := mock.NewMockClient(ctrl)
	boom := errors.New("connection refused")

	hc.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *httpclient.Request) (httpclient.Response, error) {
			assert.Equal(t, "http://petfriends.invalid/api/pets/42", req.URL)
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.NotEmpty(t, req.Headers["Traceparent"])
			return nil, boom
		})

	c := petfriends.NewClient("http://petfriends.invalid/", petfriends.WithHTTPClient(hc))
	res, err := c.DeletePet(context.Background(), "key", "42")

	require.ErrorIs(t, err, boom)
	assert.Nil(t, res)
}

func TestRequestShapeForList(t *testing.T) {
	ctrl := gomock.NewController(t)
	hc := mock.NewMockClient(ctrl)
	resp := mock.NewMockResponse(ctrl)

	resp.EXPECT().StatusCode().Return(http.StatusOK)
	resp.EXPECT().Body().Return([]byte(`{"pets":[]}`))
	resp.EXPECT().Header().Return(http.Header{"Content-Type": []string{"application/json"}})

	hc.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *httpclient.Request) (httpclient.Response, error) {
			assert.Equal(t, "key-1", req.Headers["auth_key"])
			assert.Equal(t, map[string]string{"filter": "my_pets"}, req.Query)
			return resp, nil
		})

	res, err := petfriends.NewClient("http://x", petfriends.WithHTTPClient(hc)).
		ListPets(context.Background(), "key-1", petfriends.FilterMyPets)
	require.NoError(t, err)
	assert.Equal(t, "application/json", res.ContentType)
	assert.EqualValues(t, 0, res.Get("pets.#").Int())
}
