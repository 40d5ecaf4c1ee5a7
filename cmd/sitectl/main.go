// Command sitectl runs operator tasks against the site store: seeding
// defaults, creating admin accounts and exporting the contact vCard.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/admins"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/config"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/service"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/database"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Operator tools for the lawfolio site service",
	Long: `sitectl talks to the same MongoDB the site service uses (MONGODB_URI).

Available commands:
  seed          - create default content and practice areas if absent
  admin create  - bootstrap an admin account
  vcard         - print the contact vCard`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.AddCommand(seedCmd, adminCmd, vcardCmd)
	adminCmd.AddCommand(adminCreateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// store is the connected set of services a command works with.
type store struct {
	site   *service.Service
	admins *admins.Service
	close  func()
}

// openStore is replaced in tests.
var openStore = func(ctx context.Context) (*store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.MongoDB.URI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	client, db, err := database.Open(ctx, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	v := validate.New(cfg.Site.Locale)
	return &store{
		site:   service.NewMongoService(db, v, service.WithVCardPrefix(cfg.Site.VCardNamePrefix)),
		admins: admins.NewService(admins.NewMongoAdminRepository(db), v),
		close:  func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

func withStore(cmd *cobra.Command, fn func(context.Context, *store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.close()
	return fn(ctx, st)
}
