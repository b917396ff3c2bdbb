package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrAlbumNotFound signals the referenced album does not exist.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrSongNotFound signals the referenced song does not exist.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound signals the referenced playlist does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrAlreadyLiked indicates a like row already exists for the (user, album) pair.
	ErrAlreadyLiked = errors.New("album already liked")
	// ErrLikeNotFound indicates no like row exists for the (user, album) pair.
	ErrLikeNotFound = errors.New("like not found")

	// ErrSongAlreadyInPlaylist indicates the song is already on the playlist.
	ErrSongAlreadyInPlaylist = errors.New("song already in playlist")
	// ErrSongNotInPlaylist indicates the song is not on the playlist.
	ErrSongNotInPlaylist = errors.New("song not in playlist")

	// ErrCollaboratorExists indicates the user is already a collaborator.
	ErrCollaboratorExists = errors.New("collaborator already exists")
	// ErrCollaboratorNotFound indicates the user is not a collaborator.
	ErrCollaboratorNotFound = errors.New("collaborator not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func newID() string {
	return uuid.NewString()
}
