package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph082/aws-amplify-docs/internal/content"
	"github.com/joseph082/aws-amplify-docs/internal/directory"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the content tree and render every page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			tree, err := directory.Load(cmd.Context(), cfg.Content.Dir)
			if err != nil {
				return err
			}

			var problems []string
			var verr *directory.ValidationError
			if err := directory.Validate(tree); errors.As(err, &verr) {
				problems = append(problems, verr.Problems()...)
			}

			store := content.NewStore(content.WithCacheTTL(0), content.WithRoot(cfg.Content.Dir))
			_ = tree.Walk(func(n *directory.PageNode) error {
				if n.Source == "" {
					return nil
				}
				if _, err := store.Page(cmd.Context(), n.Source); err != nil {
					problems = append(problems, fmt.Sprintf("%s: %v", n.Route, err))
				}
				return nil
			})

			out := cmd.OutOrStdout()
			for _, p := range problems {
				_, _ = fmt.Fprintln(out, p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("check failed: %d problem(s)", len(problems))
			}
			_, _ = fmt.Fprintf(out, "ok: %d pages\n", tree.Len())
			return nil
		},
	}
}
