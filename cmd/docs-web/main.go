package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph082/aws-amplify-docs/internal/config"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// rootOptions are flags shared by every subcommand.
type rootOptions struct {
	contentDir string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "docs-web",
		Short:         "Platform-scoped documentation site",
		Long:          "Serves and checks a markdown documentation tree whose pages are filtered by platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.contentDir, "content", "", "content directory (overrides DOCS_WEB_CONTENT_DIR)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read before the environment")

	cmd.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
		newOverviewCmd(opts),
	)
	return cmd
}

// loadConfig reads configuration and applies the shared flags on top.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.WithEnvFile(o.envFile))
	if err != nil {
		return config.Config{}, err
	}
	if o.contentDir != "" {
		cfg.Content.Dir = o.contentDir
	}
	return cfg, nil
}
