package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph082/aws-amplify-docs/internal/directory"
	"github.com/joseph082/aws-amplify-docs/internal/overview"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
)

func newOverviewCmd(root *rootOptions) *cobra.Command {
	var (
		rawPlatform string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "overview <route>",
		Short: "Print the overview grid of a route for a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			tree, err := directory.Load(cmd.Context(), cfg.Content.Dir)
			if err != nil {
				return err
			}
			route := directory.NormalizeRoute(args[0])
			if _, ok := tree.Find(route); !ok {
				return fmt.Errorf("unknown route %s", route)
			}

			p := cfg.Site.DefaultPlatform
			if v := strings.TrimSpace(rawPlatform); v != "" {
				p = platform.Platform(v)
			}
			children := tree.Children(route)

			out := cmd.OutOrStdout()
			if asJSON {
				entries := overview.Entries(children, p)
				if entries == nil {
					entries = []overview.Entry{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if err := overview.Render(children, p).Render(out); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&rawPlatform, "platform", "", "platform to filter by (defaults to DOCS_WEB_DEFAULT_PLATFORM)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON instead of HTML")
	return cmd
}
