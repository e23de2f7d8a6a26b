package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apgomes/blogmod/internal/client"
	"github.com/apgomes/blogmod/internal/model"
)

func newEditCmd(cfg *cliConfig, jsonOutput *bool) *cobra.Command {
	var (
		title     string
		author    string
		content   string
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a post, sending only the fields you change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := newAPIClient(cfg)
			id := model.PostID(args[0])

			// The API has no single-post read, so the edit loads its
			// originals from the collection.
			posts, err := apiClient.ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			var target *model.Post
			for i := range posts {
				if posts[i].ID == id {
					target = &posts[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("no post with id %s", id)
			}

			session := client.NewFormSession(apiClient)
			session.BeginEdit(*target)

			if cmd.Flags().Changed("title") {
				session.SetTitle(title)
			}
			if cmd.Flags().Changed("author") {
				session.SetAuthor(author)
			}
			if cmd.Flags().Changed("content") {
				session.SetContent(content)
			}
			if imagePath != "" {
				if err := attachImageFile(session, imagePath); err != nil {
					return err
				}
			}

			post, err := session.Submit(cmd.Context())
			if err != nil {
				return err
			}
			if *jsonOutput {
				return writeJSON(post)
			}
			return writePost(post)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&author, "author", "", "new author")
	cmd.Flags().StringVar(&content, "content", "", "new body")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a replacement image")

	return cmd
}
