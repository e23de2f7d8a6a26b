package main

import (
	"os"

	"github.com/spf13/cobra"
)

// cliConfig comes from the environment so the binary works without a config
// file next to it.
type cliConfig struct {
	apiURL string
	token  string
}

func loadConfig() *cliConfig {
	apiURL := os.Getenv("BLOGMOD_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:12700"
	}
	return &cliConfig{
		apiURL: apiURL,
		token:  os.Getenv("BLOGMOD_API_TOKEN"),
	}
}

func newRootCmd(cfg *cliConfig) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Blogctl manages blog posts over the posts API",
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")

	cmd.AddCommand(
		newListCmd(cfg, &jsonOutput),
		newCreateCmd(cfg, &jsonOutput),
		newEditCmd(cfg, &jsonOutput),
		newDeleteCmd(cfg),
	)

	return cmd
}
