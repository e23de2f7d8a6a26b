package repository

import (
	"errors"
	"testing"

	"github.com/apgomes/blogmod/internal/model"
)

func TestMemoryPostRepository(t *testing.T) {
	repo := NewMemoryPostRepository()

	first, err := repo.Create(model.PostFields{Title: "One", Author: "Ana", ImageURL: "mem://a.png"})
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	second, err := repo.Create(model.PostFields{Title: "Two", Author: "Bea"})
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	posts, err := repo.GetPosts()
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 || posts[0].ID != first.ID || posts[1].ID != second.ID {
		t.Errorf("Expected insertion order [%s %s], got %+v", first.ID, second.ID, posts)
	}

	title := "One!"
	updated, err := repo.Update(first.ID, model.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("Failed to update post: %v", err)
	}
	if updated.Title != "One!" || updated.ImageURL != "mem://a.png" {
		t.Errorf("Partial update broke merge semantics: %+v", updated)
	}

	// Returned posts are copies, callers cannot mutate stored state.
	updated.Title = "mutated"
	got, _ := repo.GetPost(first.ID)
	if got.Title != "One!" {
		t.Errorf("Stored post was mutated through a returned copy: %q", got.Title)
	}

	if err := repo.Delete(first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(first.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound on repeat delete, got %v", err)
	}
}
