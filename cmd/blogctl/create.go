package main

import (
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apgomes/blogmod/internal/client"
)

func newCreateCmd(cfg *cliConfig, jsonOutput *bool) *cobra.Command {
	var (
		title     string
		author    string
		content   string
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := client.NewFormSession(newAPIClient(cfg))
			session.SetTitle(title)
			session.SetAuthor(author)
			session.SetContent(content)

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

	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&author, "author", "", "post author")
	cmd.Flags().StringVar(&content, "content", "", "post body")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to an image file to attach")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("author")

	return cmd
}

func attachImageFile(session *client.FormSession, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	session.AttachImage(filepath.Base(path), contentType, data)
	return nil
}
