package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"mercari/internal/item"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxUploadBytes bounds a POST /items body.
const maxUploadBytes = 32 << 20

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Hello, world!"})
}

// handleGetItems returns every item as {"items": [...]}
func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		log.Printf("[%s] list items: %v", middleware.GetReqID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	respondJSON(w, http.StatusOK, item.List{Items: items})
}

// handleAddItem stores a multipart upload of name, category and image.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return
	}
	name := r.FormValue("name")
	category := r.FormValue("category")
	if name == "" || category == "" {
		respondError(w, http.StatusBadRequest, "name, category, and image are required")
		return
	}

	f, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "name, category, and image are required")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	imageName, err := s.images.Save(data)
	if err != nil {
		log.Printf("[%s] save image: %v", middleware.GetReqID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	if _, err := s.store.AddItem(r.Context(), item.Item{Name: name, Category: category, ImageName: imageName}); err != nil {
		log.Printf("[%s] add item: %v", middleware.GetReqID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "Failed to store item")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("item received: %s", name)})
}

// handleGetItem returns a single item by ID
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	it, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch item")
		return
	}
	if it == nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// handleSearch returns items whose name contains ?keyword=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}
	items, err := s.store.SearchItems(r.Context(), keyword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search items")
		return
	}
	respondJSON(w, http.StatusOK, item.List{Items: items})
}
