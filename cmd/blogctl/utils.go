package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/apgomes/blogmod/internal/api"
	"github.com/apgomes/blogmod/internal/model"
)

func newAPIClient(cfg *cliConfig) *api.Client {
	return api.NewClient(cfg.apiURL, cfg.token)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePostList(posts []model.Post) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tIMAGE")
	for _, post := range posts {
		image := "-"
		if post.ImageURL != "" {
			image = post.ImageURL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", post.ID, post.Title, post.Author, image)
	}
	return w.Flush()
}

func writePost(post *model.Post) error {
	fmt.Printf("ID:      %s\n", post.ID)
	fmt.Printf("Title:   %s\n", post.Title)
	fmt.Printf("Author:  %s\n", post.Author)
	if post.ImageURL != "" {
		fmt.Printf("Image:   %s\n", post.ImageURL)
	}
	if post.Content != "" {
		fmt.Printf("\n%s\n", post.Content)
	}
	return nil
}
