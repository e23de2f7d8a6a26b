// Package repository persists post records. The repository is the
// serialization point for mutations: update and delete for a given id always
// observe a consistent prior state.
package repository

import (
	"github.com/apgomes/blogmod/internal/model"
	"github.com/rs/zerolog"
)

type PostRepository interface {
	// Create assigns a fresh id and stores all supplied fields.
	Create(fields model.PostFields) (*model.Post, error)

	// GetPosts returns every post in insertion order.
	GetPosts() ([]model.Post, error)

	GetPost(id model.PostID) (*model.Post, error)

	// Update merges only the non-nil patch fields into the stored record.
	Update(id model.PostID, patch model.PostPatch) (*model.Post, error)

	// Delete removes the record. Deleting an id that is already gone returns
	// ErrPostNotFound so callers can tell "already gone" from "just deleted".
	Delete(id model.PostID) error
}

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}
