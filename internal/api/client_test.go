package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apgomes/blogmod/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func TestCreatePostSendsMultipart(t *testing.T) {
	var gotAuth string
	var gotFields map[string][]string
	var gotFile []byte
	var gotFileType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/posts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = r.MultipartForm.Value

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFile, _ = io.ReadAll(file)
		gotFileType = header.Header.Get("Content-Type")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Post{ID: "p1", Title: "Hi", Author: "Ana"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok123")
	post, err := client.CreatePost(context.Background(), Submission{
		Title:  strptr("Hi"),
		Author: strptr("Ana"),
		Image:  &Image{FileName: "pic.png", ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)

	assert.Equal(t, model.PostID("p1"), post.ID)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, []string{"Hi"}, gotFields["title"])
	assert.Equal(t, []string{"Ana"}, gotFields["author"])
	assert.NotContains(t, gotFields, "content", "absent fields must not be sent")
	assert.Equal(t, []byte("png"), gotFile)
	assert.Equal(t, "image/png", gotFileType)
}

func TestUpdatePostSendsOnlyPresentFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/posts/p1", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, []string{"Hi there"}, r.MultipartForm.Value["title"])
		assert.NotContains(t, r.MultipartForm.Value, "author")
		assert.NotContains(t, r.MultipartForm.Value, "content")
		assert.Empty(t, r.MultipartForm.File)

		json.NewEncoder(w).Encode(model.Post{ID: "p1", Title: "Hi there"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	post, err := client.UpdatePost(context.Background(), "p1", Submission{Title: strptr("Hi there")})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", post.Title)
}

func TestListPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Post{{ID: "a"}, {ID: "b"}})
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL, "").ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, model.PostID("a"), posts[0].ID)
}

func TestDeletePostNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "post not found: p9", Code: "not_found"})
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").DeletePost(context.Background(), "p9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "missing required field: title", Code: "validation_error"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").CreatePost(context.Background(), Submission{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation_error")
	assert.Contains(t, err.Error(), "missing required field: title")
}
