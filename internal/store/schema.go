package store

import _ "embed"

// Schema holds the DDL for all tables this store touches. The unique
// constraint on user_album_likes (user_id, album_id) is load-bearing: the
// like toggle relies on it instead of a read-then-write existence check.
//
//go:embed schema.sql
var Schema string
