// Package model defines core data structures and types for the blog application.
package model

import "time"

type PostID string

type Post struct {
	ID PostID `json:"id"`

	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`

	// ImageURL points at the blob backing this post's image, if any.
	// The post holds a reference only; deleting a post never deletes the blob.
	ImageURL string `json:"imageUrl,omitempty"`

	CreatedDate  time.Time `json:"createdAt"`
	ModifiedDate time.Time `json:"modifiedAt"`

	// Optional data: owner of the post (for example, the user who created it).
	Owner UserID `json:"-"`
}

// PostFields is the full field set persisted on create.
type PostFields struct {
	Title    string
	Author   string
	Content  string
	ImageURL string
	Owner    UserID
}

// PostPatch carries only the fields a caller wants changed. A nil field is
// left untouched by Update, which is what keeps ImageURL alive across
// image-less edits.
type PostPatch struct {
	Title    *string
	Author   *string
	Content  *string
	ImageURL *string
}

// Empty reports whether the patch would change nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.Content == nil && p.ImageURL == nil
}
