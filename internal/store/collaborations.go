package store

import (
	"context"
	"fmt"
	"time"
)

// IsCollaborator reports whether userID is on the playlist's collaborator roster.
func (s *Store) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM playlist_collaborators WHERE playlist_id = $1 AND user_id = $2)
	`, playlistID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check collaborator: %w", err)
	}
	return exists, nil
}

// AddCollaborator grants userID collaborator access to the playlist.
func (s *Store) AddCollaborator(ctx context.Context, playlistID, userID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlist_collaborators (id, playlist_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, newID(), playlistID, userID, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrCollaboratorExists
		}
		return "", fmt.Errorf("insert collaborator: %w", err)
	}
	return id, nil
}

// RemoveCollaborator revokes userID's collaborator access.
func (s *Store) RemoveCollaborator(ctx context.Context, playlistID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_collaborators
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaborator: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}
