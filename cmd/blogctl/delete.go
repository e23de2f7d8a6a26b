package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apgomes/blogmod/internal/model"
)

func newDeleteCmd(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.PostID(args[0])
			if err := newAPIClient(cfg).DeletePost(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("deleted", id)
			return nil
		},
	}
}
