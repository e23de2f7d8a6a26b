// Package service orchestrates one post submission end-to-end: validate,
// store the image if one was supplied, then write the record. The image is
// always stored before the record so a post can never reference a blob that
// failed to materialize. The reverse failure (blob stored, record write
// fails) only orphans a harmless blob.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/apgomes/blogmod/internal/blob"
	"github.com/apgomes/blogmod/internal/model"
	"github.com/apgomes/blogmod/internal/repository"
	"github.com/rs/zerolog"
)

const (
	defaultUploadAttempts = 3
	defaultUploadBackoff  = 200 * time.Millisecond
)

// ImageUpload is the binary payload of one submission.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// Submission carries the fields of one create or update request. A nil field
// was not present in the request; on update it is left unchanged.
type Submission struct {
	Title   *string
	Author  *string
	Content *string

	Image *ImageUpload
}

type PostService struct {
	repo  repository.PostRepository
	blobs blob.Store

	uploadAttempts int
	uploadBackoff  time.Duration
}

func NewPostService(repo repository.PostRepository, blobs blob.Store) *PostService {
	return &PostService{
		repo:  repo,
		blobs: blobs,

		uploadAttempts: defaultUploadAttempts,
		uploadBackoff:  defaultUploadBackoff,
	}
}

// SetUploadRetry bounds the retry loop for transient storage failures.
func (s *PostService) SetUploadRetry(attempts int, backoff time.Duration) {
	if attempts > 0 {
		s.uploadAttempts = attempts
	}
	if backoff > 0 {
		s.uploadBackoff = backoff
	}
}

var serviceLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	serviceLogger = l
}

func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.repo.GetPosts()
}

// Create validates, stores the image (if any), then creates the record.
// Every failure before the repository write leaves the repository untouched.
func (s *PostService) Create(ctx context.Context, sub Submission, owner model.UserID) (*model.Post, error) {
	title := deref(sub.Title)
	author := deref(sub.Author)

	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(author) == "" {
		return nil, &ValidationError{Field: "author"}
	}

	fields := model.PostFields{
		Title:   title,
		Author:  author,
		Content: deref(sub.Content),
		Owner:   owner,
	}

	if sub.Image != nil {
		url, err := s.storeImage(ctx, sub.Image)
		if err != nil {
			return nil, err
		}
		fields.ImageURL = url
	}

	post, err := s.repo.Create(fields)
	if err != nil {
		return nil, err
	}

	serviceLogger.Info().
		Str("post_id", string(post.ID)).
		Bool("has_image", post.ImageURL != "").
		Msg("Post created")

	return post, nil
}

// Update merges only the submitted fields into an existing post. The image
// url changes only when a new image was stored during this call.
func (s *PostService) Update(ctx context.Context, id model.PostID, sub Submission) (*model.Post, error) {
	if sub.Title != nil && strings.TrimSpace(*sub.Title) == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if sub.Author != nil && strings.TrimSpace(*sub.Author) == "" {
		return nil, &ValidationError{Field: "author"}
	}

	patch := model.PostPatch{
		Title:   sub.Title,
		Author:  sub.Author,
		Content: sub.Content,
	}

	if sub.Image != nil {
		url, err := s.storeImage(ctx, sub.Image)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &url
	}

	post, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}

	serviceLogger.Info().
		Str("post_id", string(post.ID)).
		Bool("new_image", patch.ImageURL != nil).
		Msg("Post updated")

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id model.PostID) error {
	// The blob behind the post's image url is deliberately left in place.
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	serviceLogger.Info().Str("post_id", string(id)).Msg("Post deleted")
	return nil
}

// storeImage uploads with bounded backoff. Only transient failures are
// retried; unsupported types and quota errors abort immediately.
func (s *PostService) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	backoff := s.uploadBackoff

	var lastErr error
	for attempt := 1; attempt <= s.uploadAttempts; attempt++ {
		url, err := s.blobs.Store(ctx, img.Data, img.ContentType)
		if err == nil {
			return url, nil
		}
		lastErr = err

		if !errors.Is(err, blob.ErrStorageUnavailable) {
			return "", err
		}
		if attempt == s.uploadAttempts {
			break
		}

		serviceLogger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Blob storage unavailable, retrying")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return "", lastErr
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
