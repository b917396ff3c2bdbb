package store

import (
	"context"
	"fmt"
	"time"
)

// InsertLike records that userID liked albumID and returns the new row id.
// The unique constraint on (user_id, album_id) is the sole guard against
// duplicates; a violation surfaces as ErrAlreadyLiked so callers can treat
// the insert itself as the existence check.
func (s *Store) InsertLike(ctx context.Context, userID, albumID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user_album_likes (id, user_id, album_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, newID(), userID, albumID, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrAlreadyLiked
		}
		return "", fmt.Errorf("insert like: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("insert like: no id returned")
	}
	return id, nil
}

// DeleteLike removes the like row for (userID, albumID).
func (s *Store) DeleteLike(ctx context.Context, userID, albumID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_album_likes
		WHERE user_id = $1 AND album_id = $2
	`, userID, albumID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// ExistsLike reports whether userID has liked albumID.
func (s *Store) ExistsLike(ctx context.Context, userID, albumID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_album_likes WHERE user_id = $1 AND album_id = $2)
	`, userID, albumID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

// CountLikes returns the number of likes recorded for albumID.
func (s *Store) CountLikes(ctx context.Context, albumID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_album_likes WHERE album_id = $1
	`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// AlbumExists reports whether the album is present in the catalogue.
func (s *Store) AlbumExists(ctx context.Context, albumID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM albums WHERE id = $1)
	`, albumID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check album: %w", err)
	}
	return exists, nil
}

// SongExists reports whether the song is present in the catalogue.
func (s *Store) SongExists(ctx context.Context, songID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)
	`, songID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check song: %w", err)
	}
	return exists, nil
}
