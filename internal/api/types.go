package api

import "errors"

// ErrorResponse is the JSON error body returned by the posts API.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrNotFound is returned when the target post id does not exist.
var ErrNotFound = errors.New("post not found")

// Image is a file part attached to a submission.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Submission mirrors the multipart form a browser client sends: only non-nil
// fields are included, so an update changes exactly what the caller touched.
type Submission struct {
	Title   *string
	Author  *string
	Content *string

	Image *Image
}
