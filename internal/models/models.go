package models

import "time"

// Playlist is owned by the user who created it. Collaborators may read and
// modify its song list but only the owner may delete it or manage the roster.
type Playlist struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	OwnerID   string         `json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	Songs     []PlaylistSong `json:"songs,omitempty"`
}

// PlaylistSong is one entry in a playlist's song list. Position determines
// listing order.
type PlaylistSong struct {
	ID        string `json:"id"`
	SongID    string `json:"song_id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
	Position  int    `json:"-"`
}
