package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apgomes/blogmod/internal/db"
	"github.com/apgomes/blogmod/internal/model"
	"github.com/apgomes/blogmod/internal/util/compression"
	"github.com/google/uuid"
)

type DBPostRepository struct { // implements PostRepository
	db         db.DB
	compressor compression.Compressor

	// mu serializes read-modify-write on update/delete so two mutations of
	// the same id never interleave.
	mu sync.Mutex
}

func NewDBPostRepository(db db.DB, compressor compression.Compressor) *DBPostRepository {
	return &DBPostRepository{
		db: db,

		compressor: compressor,
	}
}

func (r *DBPostRepository) Create(fields model.PostFields) (*model.Post, error) {
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

	compressed, err := r.compressor.Compress([]byte(post.Content))
	if err != nil {
		return nil, fmt.Errorf("error compressing content: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO posts (id, title, author, content, image_url, user_id, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Author, compressed, post.ImageURL, post.Owner, post.CreatedDate, post.ModifiedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("error saving post: %w", err)
	}

	repoLogger.Debug().Str("post_id", string(post.ID)).Msg("Post created")

	return post, nil
}

func (r *DBPostRepository) GetPosts() ([]model.Post, error) {
	// rowid order is insertion order, stable between writes.
	rows, err := r.db.Query(`SELECT id, title, author, content, image_url, user_id, created_at, modified_at FROM posts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := r.scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

func (r *DBPostRepository) GetPost(id model.PostID) (*model.Post, error) {
	row := r.db.Get().QueryRow(`SELECT id, title, author, content, image_url, user_id, created_at, modified_at FROM posts WHERE id = ?`, id)
	post, err := r.scanPost(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}
	return post, err
}

func (r *DBPostRepository) Update(id model.PostID, patch model.PostPatch) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, err := r.GetPost(id)
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

	compressed, err := r.compressor.Compress([]byte(post.Content))
	if err != nil {
		return nil, fmt.Errorf("error compressing content: %w", err)
	}

	_, err = r.db.Exec(
		`UPDATE posts SET title = ?, author = ?, content = ?, image_url = ?, modified_at = ? WHERE id = ?`,
		post.Title, post.Author, compressed, post.ImageURL, post.ModifiedDate, post.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("error saving post: %w", err)
	}

	repoLogger.Debug().Str("post_id", string(post.ID)).Msg("Post updated")

	return post, nil
}

func (r *DBPostRepository) Delete(id model.PostID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}

	repoLogger.Debug().Str("post_id", string(id)).Msg("Post deleted")

	return nil
}

func (r *DBPostRepository) scanPost(scan func(dest ...any) error) (*model.Post, error) {
	var post model.Post
	var compressed []byte

	err := scan(&post.ID, &post.Title, &post.Author, &compressed, &post.ImageURL, &post.Owner, &post.CreatedDate, &post.ModifiedDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning post: %w", err)
	}

	if len(compressed) > 0 {
		content, err := r.compressor.Decompress(compressed)
		if err != nil {
			return nil, fmt.Errorf("error decompressing content: %w", err)
		}
		post.Content = string(content)
	}

	return &post, nil
}
