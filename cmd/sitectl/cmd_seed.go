package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/service"
	"github.com/spf13/cobra"
)

// seedCmd creates missing singleton documents and default services
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create default content and practice areas if absent",
	Long: `Create the hero, about and contact documents with empty fields and insert
every default practice area whose title is not present yet.

Running seed again creates nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, st *store) error {
			return runSeed(ctx, st.site, cmd.OutOrStdout())
		})
	},
}

func runSeed(ctx context.Context, svc *service.Service, out io.Writer) error {
	rep, err := svc.SeedDefaultsIfAbsent(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(rep.Content) == 0 && len(rep.Services) == 0 {
		fmt.Fprintln(out, "nothing to seed")
		return nil
	}
	for _, k := range rep.Content {
		fmt.Fprintf(out, "created content %s\n", k)
	}
	for _, t := range rep.Services {
		fmt.Fprintf(out, "created service %s\n", t)
	}
	return nil
}
