package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(cfg *cliConfig, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := newAPIClient(cfg).ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			if *jsonOutput {
				return writeJSON(posts)
			}
			return writePostList(posts)
		},
	}
}
