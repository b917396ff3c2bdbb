// Package playlists coordinates playlist workflows, consulting the access
// service before every store mutation or read that targets an existing
// playlist.
package playlists

import (
	"context"

	"melodex/internal/app/access"
	"melodex/internal/models"
	"melodex/internal/store"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, ownerID string) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	ListPlaylists(ctx context.Context, userID string) ([]*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	AddSongToPlaylist(ctx context.Context, playlistID, songID string) error
	ListPlaylistSongs(ctx context.Context, playlistID string) ([]models.PlaylistSong, error)
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error
	SongExists(ctx context.Context, songID string) (bool, error)
	AddCollaborator(ctx context.Context, playlistID, userID string) (string, error)
	RemoveCollaborator(ctx context.Context, playlistID, userID string) error
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, name, ownerID string) (*models.Playlist, error)
	List(ctx context.Context, userID string) ([]*models.Playlist, error)
	Delete(ctx context.Context, playlistID, userID string) error
	AddSong(ctx context.Context, playlistID, songID, userID string) error
	ListSongs(ctx context.Context, playlistID, userID string) (*models.Playlist, error)
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	AddCollaborator(ctx context.Context, playlistID, collaboratorID, userID string) (string, error)
	RemoveCollaborator(ctx context.Context, playlistID, collaboratorID, userID string) error
}

type service struct {
	store  Store
	access access.Service
}

// New constructs a Service backed by the provided store and access checks.
func New(st Store, ac access.Service) Service {
	return &service{store: st, access: ac}
}

func (s *service) Create(ctx context.Context, name, ownerID string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreatePlaylist(ctx, name, ownerID)
}

func (s *service) List(ctx context.Context, userID string) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, userID)
}

// Delete removes a playlist. Owner only: collaborators cannot delete.
func (s *service) Delete(ctx context.Context, playlistID, userID string) error {
	if err := s.access.VerifyOwner(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, playlistID)
}

// AddSong appends a song for an owner or collaborator. The song must exist.
func (s *service) AddSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := s.access.VerifyAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	exists, err := s.store.SongExists(ctx, songID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrSongNotFound
	}
	return s.store.AddSongToPlaylist(ctx, playlistID, songID)
}

// ListSongs returns the playlist with its songs for an owner or collaborator.
func (s *service) ListSongs(ctx context.Context, playlistID, userID string) (*models.Playlist, error) {
	if err := s.access.VerifyAccess(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	songs, err := s.store.ListPlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	playlist.Songs = songs
	return playlist, nil
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := s.access.VerifyAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.RemoveSongFromPlaylist(ctx, playlistID, songID)
}

// AddCollaborator puts collaboratorID on the roster. Owner only.
func (s *service) AddCollaborator(ctx context.Context, playlistID, collaboratorID, userID string) (string, error) {
	if err := s.access.VerifyOwner(ctx, playlistID, userID); err != nil {
		return "", err
	}
	return s.store.AddCollaborator(ctx, playlistID, collaboratorID)
}

// RemoveCollaborator takes collaboratorID off the roster. Owner only.
func (s *service) RemoveCollaborator(ctx context.Context, playlistID, collaboratorID, userID string) error {
	if err := s.access.VerifyOwner(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.RemoveCollaborator(ctx, playlistID, collaboratorID)
}
