// Package access decides who may touch a playlist. Ownership and
// collaboration are distinct trust tiers: VerifyOwner gates playlist
// lifecycle (deletion, roster management) while VerifyAccess gates the song
// list, so a collaborator can edit songs but never delete the playlist.
package access

import (
	"context"
	"errors"

	"melodex/internal/models"
)

// ErrForbidden indicates the user lacks the required relationship to the playlist.
var ErrForbidden = errors.New("forbidden")

// Store defines the lookups the authorization checks need.
type Store interface {
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error)
}

// Service exposes the two-tier playlist authorization checks.
type Service interface {
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	VerifyAccess(ctx context.Context, playlistID, userID string) error
}

type service struct {
	store Store
}

// New constructs an access Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

// VerifyOwner returns nil when userID owns the playlist, ErrForbidden when it
// exists but belongs to someone else, and store.ErrPlaylistNotFound when it
// does not exist.
func (s *service) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

// VerifyAccess returns nil when userID owns the playlist or collaborates on
// it. Only an ownership mismatch escalates to the collaborator check;
// a missing playlist short-circuits with the not-found error unchanged.
func (s *service) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	err := s.VerifyOwner(ctx, playlistID, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrForbidden) {
		return err
	}

	collaborator, err := s.store.IsCollaborator(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !collaborator {
		return ErrForbidden
	}
	return nil
}
