// Package httpapi wires the services to a plain net/http mux. Identity
// arrives pre-authenticated in the X-User-ID header; this layer never parses
// tokens or validates payload schemas beyond basic shape.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"melodex/internal/app/access"
	"melodex/internal/app/engagement"
	"melodex/internal/app/playlists"
	"melodex/internal/store"
)

const userIDHeader = "X-User-ID"

// Server wires HTTP handlers to the underlying services.
type Server struct {
	engagement engagement.Service
	playlists  playlists.Service
	albums     AlbumDirectory
}

// AlbumDirectory answers album existence checks, the precondition for like
// operations.
type AlbumDirectory interface {
	AlbumExists(ctx context.Context, albumID string) (bool, error)
}

// New configures a Server with the given services.
func New(eng engagement.Service, pls playlists.Service, albums AlbumDirectory) *Server {
	return &Server{engagement: eng, playlists: pls, albums: albums}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Album like routes
	mux.HandleFunc("POST /api/v1/albums/{id}/likes", s.handleToggleLike)
	mux.HandleFunc("GET /api/v1/albums/{id}/likes", s.handleLikeCount)
	mux.HandleFunc("GET /api/v1/albums/{id}/likes/status", s.handleLikeStatus)

	// Playlist routes
	mux.HandleFunc("POST /api/v1/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /api/v1/playlists", s.handleListPlaylists)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /api/v1/playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("GET /api/v1/playlists/{id}/songs", s.handleListPlaylistSongs)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/songs/{songId}", s.handleRemovePlaylistSong)
	mux.HandleFunc("POST /api/v1/playlists/{id}/collaborators", s.handleAddCollaborator)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/collaborators/{userId}", s.handleRemoveCollaborator)

	return mux
}

// userID extracts the authenticated identity supplied by the fronting layer.
func userID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Error().Err(err).Msg("encode response")
		}
	}
}

// respondError maps the service error taxonomy to status codes: not-found
// sentinels to 404, authorization failures to 403, conflicts to 409, and
// everything else, invariant violations included, to a generic 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrPlaylistNotFound),
		errors.Is(err, store.ErrAlbumNotFound),
		errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrSongNotInPlaylist),
		errors.Is(err, store.ErrCollaboratorNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, access.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, store.ErrSongAlreadyInPlaylist),
		errors.Is(err, store.ErrCollaboratorExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error().Err(err).Msg("internal error")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
