package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/apgomes/blogmod/internal/model"
	"github.com/google/uuid"
)

// MemoryPostRepository keeps posts in process memory, in insertion order.
// Used by tests and as a throwaway backend.
type MemoryPostRepository struct { // implements PostRepository
	mu    sync.Mutex
	posts []*model.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

func (r *MemoryPostRepository) Create(fields model.PostFields) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	post := &model.Post{
		ID: model.PostID(uuid.New().String()),

		Title:    fields.Title,
		Author:   fields.Author,
		Content:  fields.Content,
		ImageURL: fields.ImageURL,
		Owner:    fields.Owner,

		CreatedDate:  now,
		ModifiedDate: now,
	}

	r.posts = append(r.posts, post)
	return copyPost(post), nil
}

func (r *MemoryPostRepository) GetPosts() ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := make([]model.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, *post)
	}
	return posts, nil
}

func (r *MemoryPostRepository) GetPost(id model.PostID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, _, err := r.find(id)
	if err != nil {
		return nil, err
	}
	return copyPost(post), nil
}

func (r *MemoryPostRepository) Update(id model.PostID, patch model.PostPatch) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, _, err := r.find(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Author != nil {
		post.Author = *patch.Author
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.ImageURL != nil {
		post.ImageURL = *patch.ImageURL
	}
	post.ModifiedDate = time.Now().UTC()

	return copyPost(post), nil
}

func (r *MemoryPostRepository) Delete(id model.PostID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, err := r.find(id)
	if err != nil {
		return err
	}

	r.posts = append(r.posts[:idx], r.posts[idx+1:]...)
	return nil
}

func (r *MemoryPostRepository) find(id model.PostID) (*model.Post, int, error) {
	for i, post := range r.posts {
		if post.ID == id {
			return post, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrPostNotFound, id)
}

func copyPost(post *model.Post) *model.Post {
	clone := *post
	return &clone
}
