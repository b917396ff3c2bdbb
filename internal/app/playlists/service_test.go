package playlists

import (
	"context"
	"errors"
	"testing"
	"time"

	"melodex/internal/app/access"
	"melodex/internal/models"
	"melodex/internal/store"
)

// fakeStore backs both the playlist service and the access checks, mirroring
// the sentinel contract of the Postgres store.
type fakeStore struct {
	playlists     map[string]*models.Playlist
	songs         map[string][]models.PlaylistSong
	collaborators map[string][]string
	knownSongs    map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		playlists: map[string]*models.Playlist{
			"p1": {ID: "p1", Name: "Shared", OwnerID: "owner", CreatedAt: time.Now()},
		},
		songs: map[string][]models.PlaylistSong{
			"p1": {{ID: "e1", SongID: "s1", Title: "Roygbiv", Performer: "Boards of Canada"}},
		},
		collaborators: map[string][]string{"p1": {"collab"}},
		knownSongs:    map[string]bool{"s1": true, "s2": true},
	}
}

func (f *fakeStore) CreatePlaylist(ctx context.Context, name, ownerID string) (*models.Playlist, error) {
	playlist := &models.Playlist{ID: "p-new", Name: name, OwnerID: ownerID, CreatedAt: time.Now()}
	f.playlists[playlist.ID] = playlist
	return playlist, nil
}

func (f *fakeStore) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	playlist, ok := f.playlists[id]
	if !ok {
		return nil, store.ErrPlaylistNotFound
	}
	clone := *playlist
	return &clone, nil
}

func (f *fakeStore) ListPlaylists(ctx context.Context, userID string) ([]*models.Playlist, error) {
	var out []*models.Playlist
	for _, playlist := range f.playlists {
		if playlist.OwnerID == userID {
			out = append(out, playlist)
			continue
		}
		for _, collab := range f.collaborators[playlist.ID] {
			if collab == userID {
				out = append(out, playlist)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) DeletePlaylist(ctx context.Context, id string) error {
	if _, ok := f.playlists[id]; !ok {
		return store.ErrPlaylistNotFound
	}
	delete(f.playlists, id)
	delete(f.songs, id)
	delete(f.collaborators, id)
	return nil
}

func (f *fakeStore) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	for _, song := range f.songs[playlistID] {
		if song.SongID == songID {
			return store.ErrSongAlreadyInPlaylist
		}
	}
	f.songs[playlistID] = append(f.songs[playlistID], models.PlaylistSong{SongID: songID})
	return nil
}

func (f *fakeStore) ListPlaylistSongs(ctx context.Context, playlistID string) ([]models.PlaylistSong, error) {
	return f.songs[playlistID], nil
}

func (f *fakeStore) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error {
	songs := f.songs[playlistID]
	for i, song := range songs {
		if song.SongID == songID {
			f.songs[playlistID] = append(songs[:i], songs[i+1:]...)
			return nil
		}
	}
	return store.ErrSongNotInPlaylist
}

func (f *fakeStore) SongExists(ctx context.Context, songID string) (bool, error) {
	return f.knownSongs[songID], nil
}

func (f *fakeStore) AddCollaborator(ctx context.Context, playlistID, userID string) (string, error) {
	for _, collab := range f.collaborators[playlistID] {
		if collab == userID {
			return "", store.ErrCollaboratorExists
		}
	}
	f.collaborators[playlistID] = append(f.collaborators[playlistID], userID)
	return "collab-new", nil
}

func (f *fakeStore) RemoveCollaborator(ctx context.Context, playlistID, userID string) error {
	collabs := f.collaborators[playlistID]
	for i, collab := range collabs {
		if collab == userID {
			f.collaborators[playlistID] = append(collabs[:i], collabs[i+1:]...)
			return nil
		}
	}
	return store.ErrCollaboratorNotFound
}

func (f *fakeStore) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	for _, collab := range f.collaborators[playlistID] {
		if collab == userID {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(f *fakeStore) Service {
	return New(f, access.New(f))
}

func TestDeleteIsOwnerOnly(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		playlistID string
		userID     string
		want       error
	}{
		{"collaborator cannot delete", "p1", "collab", access.ErrForbidden},
		{"stranger cannot delete", "p1", "stranger", access.ErrForbidden},
		{"missing playlist", "missing", "owner", store.ErrPlaylistNotFound},
		{"owner deletes", "p1", "owner", nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := newTestService(newFakeStore()).Delete(ctx, tc.playlistID, tc.userID)
			if tc.want == nil && err != nil {
				t.Fatalf("expected nil, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAddSongAccessTiers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		songID string
		want   error
	}{
		{"owner adds song", "owner", "s2", nil},
		{"collaborator adds song", "collab", "s2", nil},
		{"stranger forbidden", "stranger", "s2", access.ErrForbidden},
		{"unknown song", "owner", "nope", store.ErrSongNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := newTestService(newFakeStore()).AddSong(ctx, "p1", tc.songID, tc.userID)
			if tc.want == nil && err != nil {
				t.Fatalf("expected nil, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestListSongsForCollaborator(t *testing.T) {
	svc := newTestService(newFakeStore())

	playlist, err := svc.ListSongs(context.Background(), "p1", "collab")
	if err != nil {
		t.Fatalf("ListSongs error: %v", err)
	}
	if len(playlist.Songs) != 1 || playlist.Songs[0].Title != "Roygbiv" {
		t.Fatalf("unexpected songs: %+v", playlist.Songs)
	}
}

func TestCollaboratorRosterIsOwnerOnly(t *testing.T) {
	ctx := context.Background()

	if _, err := newTestService(newFakeStore()).AddCollaborator(ctx, "p1", "new-user", "collab"); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for collaborator managing roster, got %v", err)
	}

	svc := newTestService(newFakeStore())
	if _, err := svc.AddCollaborator(ctx, "p1", "new-user", "owner"); err != nil {
		t.Fatalf("owner add collaborator: %v", err)
	}
	if err := svc.RemoveCollaborator(ctx, "p1", "new-user", "owner"); err != nil {
		t.Fatalf("owner remove collaborator: %v", err)
	}
}

func TestRemoveSongRequiresAccess(t *testing.T) {
	ctx := context.Background()

	if err := newTestService(newFakeStore()).RemoveSong(ctx, "p1", "s1", "stranger"); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := newTestService(newFakeStore()).RemoveSong(ctx, "p1", "s1", "collab"); err != nil {
		t.Fatalf("collaborator remove song: %v", err)
	}
}
