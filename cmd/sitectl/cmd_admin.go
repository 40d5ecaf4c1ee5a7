package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/admins"
	"github.com/spf13/cobra"
)

var adminInput admins.Input

// adminCmd groups admin account management
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

// adminCreateCmd bootstraps an admin account
var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, st *store) error {
			return runAdminCreate(ctx, st.admins, adminInput, cmd.OutOrStdout())
		})
	},
}

func init() {
	f := adminCreateCmd.Flags()
	f.StringVar(&adminInput.Email, "email", "", "login email")
	f.StringVar(&adminInput.Name, "name", "", "display name")
	f.StringVar(&adminInput.Password, "password", "", "password (at least 6 characters)")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("name")
	_ = adminCreateCmd.MarkFlagRequired("password")
}

func runAdminCreate(ctx context.Context, svc *admins.Service, in admins.Input, out io.Writer) error {
	a, err := svc.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(out, "created admin %s (%s)\n", a.Email, a.ID)
	return nil
}
