// Package fakeservice is an in-process double of the placeholder JSON API, used to run the
// contract tests without network access.
package fakeservice

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler serves the API routes from a Store.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler.
func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

// New returns the complete service as an http.Handler, seeded with the embedded data.
func New() (http.Handler, error) {
	s, err := NewStore()
	if err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	NewHandler(s).Routes(r)
	return r, nil
}

// Routes mounts the API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Post("/", h.CreatePost)
		r.Get("/{id}", h.GetPost)
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
	})
	r.NotFound(notFound)
}

// ListPosts handles GET /posts
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryInt(r, "userId")
	if !ok {
		writeJSON(w, http.StatusOK, []Post{})
		return
	}
	writeJSON(w, http.StatusOK, h.store.Posts(userID))
}

// GetPost handles GET /posts/{id}. Query parameters are ignored.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, r)
		return
	}
	post, ok := h.store.Post(id)
	if !ok {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /posts. The request fields are echoed back as given, with an "id"
// added if the request had none.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	fields := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "invalid JSON body: " + err.Error(),
		})
		return
	}
	if _, ok := fields["id"]; !ok {
		fields["id"] = h.store.NextPostID()
	}
	writeJSON(w, http.StatusCreated, fields)
}

// ListUsers handles GET /users, with an optional "id" filter.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := queryInt(r, "id")
	if !ok {
		writeJSON(w, http.StatusOK, []User{})
		return
	}
	writeJSON(w, http.StatusOK, h.store.Users(id))
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, r)
		return
	}
	user, ok := h.store.User(id)
	if !ok {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// queryInt reads an integer filter. An absent parameter gives 0 and true; a parameter
// that is not a number matches nothing, so it gives false.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
