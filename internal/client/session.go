// Package client holds the form-side state machine a submission UI drives:
// a session is either drafting a new post or editing an existing one, and a
// submit packages exactly what the user changed.
package client

import (
	"context"

	"github.com/apgomes/blogmod/internal/api"
	"github.com/apgomes/blogmod/internal/model"
)

// PostAPI is the slice of the API client a form session needs.
type PostAPI interface {
	CreatePost(ctx context.Context, sub api.Submission) (*model.Post, error)
	UpdatePost(ctx context.Context, id model.PostID, sub api.Submission) (*model.Post, error)
}

// FormFields are the text inputs of the form.
type FormFields struct {
	Title   string
	Author  string
	Content string
}

// The mode is a closed sum: either drafting a new post, or editing a specific
// one with its original fields pinned for diffing. Keeping the original
// fields inside the edit variant means a stale create-mode default can never
// leak into an edit submission.
type formMode interface {
	isFormMode()
}

type createMode struct{}

type editMode struct {
	target   model.PostID
	original FormFields
}

func (createMode) isFormMode() {}
func (editMode) isFormMode()   {}

type FormSession struct {
	api PostAPI

	mode   formMode
	fields FormFields
	image  *api.Image
}

func NewFormSession(postAPI PostAPI) *FormSession {
	return &FormSession{
		api:  postAPI,
		mode: createMode{},
	}
}

// Editing reports the target post id when the session is in edit mode.
func (s *FormSession) Editing() (model.PostID, bool) {
	if m, ok := s.mode.(editMode); ok {
		return m.target, true
	}
	return "", false
}

func (s *FormSession) Fields() FormFields {
	return s.fields
}

func (s *FormSession) SetTitle(title string)     { s.fields.Title = title }
func (s *FormSession) SetAuthor(author string)   { s.fields.Author = author }
func (s *FormSession) SetContent(content string) { s.fields.Content = content }

// AttachImage stages a file for the next submit.
func (s *FormSession) AttachImage(fileName, contentType string, data []byte) {
	s.image = &api.Image{FileName: fileName, ContentType: contentType, Data: data}
}

// BeginEdit switches to edit mode: text fields are pre-populated from the
// post, any pending file selection is cleared (the user must re-select a
// file to change the image).
func (s *FormSession) BeginEdit(post model.Post) {
	fields := FormFields{
		Title:   post.Title,
		Author:  post.Author,
		Content: post.Content,
	}
	s.mode = editMode{target: post.ID, original: fields}
	s.fields = fields
	s.image = nil
}

// Reset returns to create mode with a blank form.
func (s *FormSession) Reset() {
	s.mode = createMode{}
	s.fields = FormFields{}
	s.image = nil
}

// Submit sends the current form. Create mode sends every field; edit mode
// sends only the fields that differ from the loaded originals, plus the
// image if one was newly attached. On success the session resets to create
// mode; on failure it is left intact so the user can correct and retry.
func (s *FormSession) Submit(ctx context.Context) (*model.Post, error) {
	var post *model.Post
	var err error

	switch m := s.mode.(type) {
	case editMode:
		post, err = s.api.UpdatePost(ctx, m.target, s.diffSubmission(m.original))
	default:
		post, err = s.api.CreatePost(ctx, s.fullSubmission())
	}

	if err != nil {
		return nil, err
	}

	s.Reset()
	return post, nil
}

func (s *FormSession) fullSubmission() api.Submission {
	title := s.fields.Title
	author := s.fields.Author
	content := s.fields.Content
	return api.Submission{
		Title:   &title,
		Author:  &author,
		Content: &content,
		Image:   s.image,
	}
}

func (s *FormSession) diffSubmission(original FormFields) api.Submission {
	sub := api.Submission{Image: s.image}

	if s.fields.Title != original.Title {
		title := s.fields.Title
		sub.Title = &title
	}
	if s.fields.Author != original.Author {
		author := s.fields.Author
		sub.Author = &author
	}
	if s.fields.Content != original.Content {
		content := s.fields.Content
		sub.Content = &content
	}
	return sub
}
