package main

import (
	"context"
	"io"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/service"
	"github.com/spf13/cobra"
)

// vcardCmd prints the contact card
var vcardCmd = &cobra.Command{
	Use:   "vcard",
	Short: "Print the contact vCard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, st *store) error {
			return runVCard(ctx, st.site, cmd.OutOrStdout())
		})
	},
}

func runVCard(ctx context.Context, svc *service.Service, out io.Writer) error {
	card, err := svc.ContactVCard(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, card)
	return err
}
