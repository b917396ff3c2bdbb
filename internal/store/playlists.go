package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"melodex/internal/models"
)

// CreatePlaylist persists a new playlist owned by ownerID.
func (s *Store) CreatePlaylist(ctx context.Context, name, ownerID string) (*models.Playlist, error) {
	playlist := models.Playlist{Name: name, OwnerID: ownerID}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (id, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, newID(), name, ownerID, time.Now().UTC()).Scan(&playlist.ID, &playlist.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	return &playlist, nil
}

// GetPlaylist returns a single playlist by ID, without its songs.
func (s *Store) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, created_at
		FROM playlists
		WHERE id = $1
	`, id).Scan(&playlist.ID, &playlist.Name, &playlist.OwnerID, &playlist.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &playlist, nil
}

// ListPlaylists returns the playlists userID owns plus those shared with them
// as a collaborator.
func (s *Store) ListPlaylists(ctx context.Context, userID string) ([]*models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, p.owner_id, p.created_at
		FROM playlists p
		LEFT JOIN playlist_collaborators c ON c.playlist_id = p.id
		WHERE p.owner_id = $1 OR c.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.OwnerID, &playlist.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// DeletePlaylist removes a playlist. Associated songs and collaborators go
// with it via ON DELETE CASCADE.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddSongToPlaylist appends songID at the next free position.
func (s *Store) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	var maxPos sql.NullInt32
	if err := s.db.QueryRowContext(ctx, `
		SELECT MAX(position) FROM playlist_songs WHERE playlist_id = $1
	`, playlistID).Scan(&maxPos); err != nil {
		return fmt.Errorf("next position: %w", err)
	}
	position := 0
	if maxPos.Valid {
		position = int(maxPos.Int32) + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, newID(), playlistID, songID, position, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSongAlreadyInPlaylist
		}
		return fmt.Errorf("insert playlist song: %w", err)
	}
	return nil
}

// ListPlaylistSongs returns the playlist's songs in position order.
func (s *Store) ListPlaylistSongs(ctx context.Context, playlistID string) ([]models.PlaylistSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ps.id, ps.song_id, s.title, s.performer, ps.position
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC, ps.id ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.PlaylistSong, 0)
	for rows.Next() {
		var song models.PlaylistSong
		if err := rows.Scan(&song.ID, &song.SongID, &song.Title, &song.Performer, &song.Position); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return songs, nil
}

// RemoveSongFromPlaylist removes songID from the playlist.
func (s *Store) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotInPlaylist
	}
	return nil
}
