package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"melodex/internal/app/access"
	"melodex/internal/app/engagement"
	"melodex/internal/models"
	"melodex/internal/store"
)

type stubEngagement struct {
	action    engagement.Action
	toggleErr error

	count  int
	source engagement.Source

	liked bool

	lastUserID  string
	lastAlbumID string
}

func (s *stubEngagement) Toggle(ctx context.Context, userID, albumID string) (engagement.Action, error) {
	s.lastUserID = userID
	s.lastAlbumID = albumID
	return s.action, s.toggleErr
}

func (s *stubEngagement) LikeCount(ctx context.Context, albumID string) (int, engagement.Source, error) {
	s.lastAlbumID = albumID
	return s.count, s.source, nil
}

func (s *stubEngagement) IsLiked(ctx context.Context, userID, albumID string) (bool, error) {
	return s.liked, nil
}

type stubPlaylists struct {
	playlist *models.Playlist

	deleteErr  error
	addSongErr error
}

func (s *stubPlaylists) Create(ctx context.Context, name, ownerID string) (*models.Playlist, error) {
	return &models.Playlist{ID: "p-new", Name: name, OwnerID: ownerID}, nil
}

func (s *stubPlaylists) List(ctx context.Context, userID string) ([]*models.Playlist, error) {
	return []*models.Playlist{s.playlist}, nil
}

func (s *stubPlaylists) Delete(ctx context.Context, playlistID, userID string) error {
	return s.deleteErr
}

func (s *stubPlaylists) AddSong(ctx context.Context, playlistID, songID, userID string) error {
	return s.addSongErr
}

func (s *stubPlaylists) ListSongs(ctx context.Context, playlistID, userID string) (*models.Playlist, error) {
	return s.playlist, nil
}

func (s *stubPlaylists) RemoveSong(ctx context.Context, playlistID, songID, userID string) error {
	return nil
}

func (s *stubPlaylists) AddCollaborator(ctx context.Context, playlistID, collaboratorID, userID string) (string, error) {
	return "collab-1", nil
}

func (s *stubPlaylists) RemoveCollaborator(ctx context.Context, playlistID, collaboratorID, userID string) error {
	return nil
}

type stubAlbums struct {
	exists bool
}

func (s stubAlbums) AlbumExists(ctx context.Context, albumID string) (bool, error) {
	return s.exists, nil
}

func TestToggleLikeAdded(t *testing.T) {
	eng := &stubEngagement{action: engagement.Added}
	server := New(eng, &stubPlaylists{}, stubAlbums{exists: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums/a1/likes", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if eng.lastUserID != "u1" || eng.lastAlbumID != "a1" {
		t.Fatalf("unexpected toggle args: %q %q", eng.lastUserID, eng.lastAlbumID)
	}
}

func TestToggleLikeRemoved(t *testing.T) {
	server := New(&stubEngagement{action: engagement.Removed}, &stubPlaylists{}, stubAlbums{exists: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums/a1/likes", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestToggleLikeMissingAlbum(t *testing.T) {
	server := New(&stubEngagement{}, &stubPlaylists{}, stubAlbums{exists: false})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums/missing/likes", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestToggleLikeRequiresIdentity(t *testing.T) {
	server := New(&stubEngagement{}, &stubPlaylists{}, stubAlbums{exists: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums/a1/likes", nil)
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLikeCountCarriesDataSourceHeader(t *testing.T) {
	tests := []struct {
		name   string
		source engagement.Source
	}{
		{"served from cache", engagement.SourceCache},
		{"recomputed from store", engagement.SourceStore},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			eng := &stubEngagement{count: 7, source: tc.source}
			server := New(eng, &stubPlaylists{}, stubAlbums{exists: true})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/albums/a1/likes", nil)
			rec := httptest.NewRecorder()

			server.Routes().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got := rec.Header().Get("X-Data-Source"); got != string(tc.source) {
				t.Fatalf("expected X-Data-Source %q, got %q", tc.source, got)
			}

			var body map[string]int
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["likes"] != 7 {
				t.Fatalf("expected 7 likes, got %d", body["likes"])
			}
		})
	}
}

func TestDeletePlaylistForbidden(t *testing.T) {
	server := New(&stubEngagement{}, &stubPlaylists{deleteErr: access.ErrForbidden}, stubAlbums{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/playlists/p1", nil)
	req.Header.Set("X-User-ID", "stranger")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestDeletePlaylistNotFound(t *testing.T) {
	server := New(&stubEngagement{}, &stubPlaylists{deleteErr: store.ErrPlaylistNotFound}, stubAlbums{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/playlists/missing", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddPlaylistSongConflict(t *testing.T) {
	server := New(&stubEngagement{}, &stubPlaylists{addSongErr: store.ErrSongAlreadyInPlaylist}, stubAlbums{})

	body := bytes.NewBufferString(`{"song_id":"s1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists/p1/songs", body)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreatePlaylistValidatesName(t *testing.T) {
	server := New(&stubEngagement{}, &stubPlaylists{}, stubAlbums{})

	body := bytes.NewBufferString(`{"name":"  "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists", body)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
