package http

import (
	"log/slog"
	"net/http"
)

type addCategoryRequest struct {
	Label string `json:"label" validate:"required,max=64"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.Categories(r.Context(), userKey(r))
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	key := userKey(r)
	added, err := s.svc.AddCategory(r.Context(), key, req.Label)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	if !added {
		// Low-stakes duplicate: a conflict, not an exception.
		respondError(w, http.StatusConflict, "category already exists")
		return
	}
	s.invalidateUserCaches(key)

	slog.InfoContext(r.Context(), "Category added", "user_key", key, "label", req.Label)
	respondJSON(w, http.StatusCreated, map[string]string{"label": req.Label})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	label := r.PathValue("label")

	removed, err := s.svc.RemoveCategory(r.Context(), key, label)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	s.invalidateUserCaches(key)

	slog.InfoContext(r.Context(), "Category removed", "user_key", key, "label", label)
	respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
