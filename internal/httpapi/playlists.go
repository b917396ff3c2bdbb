package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type createPlaylistRequest struct {
	Name string `json:"name"`
}

type addSongRequest struct {
	SongID string `json:"song_id"`
}

type addCollaboratorRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	playlist, err := s.playlists.Create(r.Context(), strings.TrimSpace(req.Name), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	playlists, err := s.playlists.List(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := s.playlists.Delete(r.Context(), r.PathValue("id"), uid); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SongID == "" {
		http.Error(w, "song_id is required", http.StatusBadRequest)
		return
	}

	if err := s.playlists.AddSong(r.Context(), r.PathValue("id"), req.SongID, uid); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (s *Server) handleListPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	playlist, err := s.playlists.ListSongs(r.Context(), r.PathValue("id"), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), r.PathValue("id"), r.PathValue("songId"), uid); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleAddCollaborator(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req addCollaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	id, err := s.playlists.AddCollaborator(r.Context(), r.PathValue("id"), req.UserID, uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"collaboration_id": id})
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := s.playlists.RemoveCollaborator(r.Context(), r.PathValue("id"), r.PathValue("userId"), uid); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
