package httpapi

import (
	"net/http"

	"melodex/internal/app/engagement"
	"melodex/internal/store"
)

// dataSourceHeader reports whether a like count came from the cache or was
// recomputed from the store.
const dataSourceHeader = "X-Data-Source"

// handleToggleLike flips the acting user's like on the album. 201 when the
// like was added, 200 when it was removed, 404 when the album does not exist.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	albumID := r.PathValue("id")

	exists, err := s.albums.AlbumExists(r.Context(), albumID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, store.ErrAlbumNotFound)
		return
	}

	action, err := s.engagement.Toggle(r.Context(), uid, albumID)
	if err != nil {
		respondError(w, err)
		return
	}

	switch action {
	case engagement.Added:
		respondJSON(w, http.StatusCreated, map[string]string{"status": "liked"})
	case engagement.Removed:
		respondJSON(w, http.StatusOK, map[string]string{"status": "unliked"})
	}
}

// handleLikeCount returns the album's like count with its provenance in the
// X-Data-Source header.
func (s *Server) handleLikeCount(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	count, source, err := s.engagement.LikeCount(r.Context(), albumID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set(dataSourceHeader, string(source))
	respondJSON(w, http.StatusOK, map[string]int{"likes": count})
}

// handleLikeStatus reports whether the acting user currently likes the album.
func (s *Server) handleLikeStatus(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	albumID := r.PathValue("id")

	liked, err := s.engagement.IsLiked(r.Context(), uid, albumID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}
