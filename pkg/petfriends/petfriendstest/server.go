// Package petfriendstest provides an in-process stand-in for the PetFriends API.
//
// The server answers with the status codes and body shapes the real service
// uses, so the client and the scenario suites can run without network access.
package petfriendstest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
)

const (
	DefaultEmail    = "tester@petfriends.test"
	DefaultPassword = "s3cret"

	otherEmail = "neighbour@petfriends.test"

	maxUploadBytes = 10 << 20
	sniffLen       = 512
)

type account struct {
	email    string
	password string
	key      string
	userID   string
}

// Server is a running stand-in. It is safe for concurrent use.
type Server struct {
	srv *httptest.Server

	// Email and Password are the credentials of the primary account.
	Email    string
	Password string

	mu       sync.Mutex
	accounts map[string]*account // by email
	byKey    map[string]*account
	pets     []*petfriends.Pet // insertion order
}

// NewServer starts a stand-in with the default primary account.
func NewServer() *Server {
	return NewServerWithAccount(DefaultEmail, DefaultPassword)
}

// NewServerWithAccount starts a stand-in whose primary account uses the given credentials.
// A second account owns any pets seeded with SeedForeignPet.
func NewServerWithAccount(email, password string) *Server {
	s := &Server{
		Email:    email,
		Password: password,
		accounts: make(map[string]*account),
		byKey:    make(map[string]*account),
	}
	s.addAccount(email, password)
	s.addAccount(otherEmail, uuid.NewString())

	s.srv = httptest.NewServer(s.router())
	return s
}

// URL is the base URL of the stand-in.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// Key returns the auth key of the primary account.
func (s *Server) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[s.Email].key
}

// SeedPet stores a pet owned by the primary account and returns it.
func (s *Server) SeedPet(name, animalType, age string) petfriends.Pet {
	return s.seed(s.Email, name, animalType, age)
}

// SeedForeignPet stores a pet owned by another account.
func (s *Server) SeedForeignPet(name, animalType, age string) petfriends.Pet {
	return s.seed(otherEmail, name, animalType, age)
}

// PetCount returns the number of stored pets.
func (s *Server) PetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pets)
}

func (s *Server) seed(email, name, animalType, age string) petfriends.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.insertLocked(s.accounts[email], name, animalType, age)
}

func (s *Server) addAccount(email, password string) {
	acc := &account{
		email:    email,
		password: password,
		key:      strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		userID:   strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	s.accounts[email] = acc
	s.byKey[acc.key] = acc
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/api/key", s.handleKey)

	r.Group(func(r chi.Router) {
		r.Use(s.requireKey)
		r.Get("/api/pets", s.handleList)
		r.Post("/api/pets", s.handleAddWithPhoto)
		r.Post("/api/create_pet_simple", s.handleCreateSimple)
		r.Put("/api/pets/{id}", s.handleUpdate)
		r.Delete("/api/pets/{id}", s.handleDelete)
		r.Post("/api/pets/set_photo/{id}", s.handleSetPhoto)
	})

	return r
}

type ctxKey struct{}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		acc, ok := s.byKey[r.Header.Get("auth_key")]
		s.mu.Unlock()
		if !ok {
			writeErrorPage(w, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r, acc)))
	})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc, ok := s.accounts[r.Header.Get("email")]
	s.mu.Unlock()

	if !ok || acc.password != r.Header.Get("password") {
		writeErrorPage(w, http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": acc.key})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)
	filter := petfriends.Filter(r.URL.Query().Get("filter"))

	var mineOnly bool
	switch filter {
	case petfriends.FilterAll:
	case petfriends.FilterMyPets:
		mineOnly = true
	default:
		writeErrorPage(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	list := petfriends.PetList{Pets: make([]petfriends.Pet, 0, len(s.pets))}
	// newest first
	for i := len(s.pets) - 1; i >= 0; i-- {
		p := s.pets[i]
		if mineOnly && p.UserID != acc.userID {
			continue
		}
		list.Pets = append(list.Pets, *p)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddWithPhoto(w http.ResponseWriter, r *http.Request) {
	name, animalType, age, ok := petForm(r)
	if !ok {
		writeErrorPage(w, http.StatusBadRequest)
		return
	}
	photo, ok := readPhoto(r)
	if !ok {
		writeErrorPage(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	p := s.insertLocked(accountFrom(r), name, animalType, age)
	p.PetPhoto = photo
	out := *p
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSimple(w http.ResponseWriter, r *http.Request) {
	name, animalType, age, ok := petForm(r)
	if !ok {
		writeErrorPage(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	out := *s.insertLocked(accountFrom(r), name, animalType, age)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	name, animalType, age, ok := petForm(r)
	if !ok {
		writeErrorPage(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	p := s.ownedLocked(accountFrom(r), chi.URLParam(r, "id"))
	if p == nil {
		s.mu.Unlock()
		writeErrorPage(w, http.StatusBadRequest)
		return
	}
	p.Name, p.AnimalType, p.Age = name, animalType, petfriends.FlexString(age)
	out := *p
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, ok := readPhoto(r)
	if !ok {
		writeErrorPage(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	p := s.ownedLocked(accountFrom(r), chi.URLParam(r, "id"))
	if p == nil {
		s.mu.Unlock()
		writeErrorPage(w, http.StatusBadRequest)
		return
	}
	p.PetPhoto = photo
	out := *p
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	idx := -1
	for i, p := range s.pets {
		if p.ID == id && p.UserID == acc.userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		writeErrorPage(w, http.StatusBadRequest)
		return
	}
	s.pets = append(s.pets[:idx], s.pets[idx+1:]...)
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) insertLocked(acc *account, name, animalType, age string) *petfriends.Pet {
	p := &petfriends.Pet{
		ID:         uuid.NewString(),
		Name:       name,
		AnimalType: animalType,
		Age:        petfriends.FlexString(age),
		UserID:     acc.userID,
		CreatedAt:  petfriends.FlexString(strconv.FormatFloat(float64(time.Now().UnixNano())/1e9, 'f', 6, 64)),
	}
	s.pets = append(s.pets, p)
	return p
}

func (s *Server) ownedLocked(acc *account, id string) *petfriends.Pet {
	for _, p := range s.pets {
		if p.ID == id && p.UserID == acc.userID {
			return p
		}
	}
	return nil
}

// petForm reads and validates name, animal_type and age from either a
// multipart or an urlencoded body.
func petForm(r *http.Request) (name, animalType, age string, ok bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", "", "", false
		}
	} else if err := r.ParseForm(); err != nil {
		return "", "", "", false
	}

	name = strings.TrimSpace(r.FormValue("name"))
	animalType = strings.TrimSpace(r.FormValue("animal_type"))
	age = strings.TrimSpace(r.FormValue("age"))

	if name == "" || animalType == "" || !validAge(age) {
		return "", "", "", false
	}
	return name, animalType, age, true
}

// validAge accepts non-negative integers written with digits only.
func validAge(age string) bool {
	if age == "" {
		return false
	}
	for _, c := range age {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// readPhoto returns the uploaded pet_photo as a data URL, or ok=false when the
// part is missing or is not an image.
func readPhoto(r *http.Request) (string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", false
	}
	f, _, err := r.FormFile("pet_photo")
	if err != nil {
		return "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return "", false
	}
	sniff := data
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	contentType := http.DetectContentType(sniff)
	if !strings.HasPrefix(contentType, "image/") {
		return "", false
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var errorPages = map[int]string{
	http.StatusBadRequest: "The browser (or proxy) sent a request that this server could not understand.",
	http.StatusForbidden:  "You don't have the permission to access the requested resource. It is either read-protected or not readable by the server.",
}

func writeErrorPage(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	text := http.StatusText(status)
	_, _ = fmt.Fprintf(w, "<!doctype html>\n<html lang=en>\n<title>%d %s</title>\n<h1>%s</h1>\n<p>%s</p>\n",
		status, text, text, errorPages[status])
}
