// Package cli implements catalogctl, the command-line storefront.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/siyara/storefront/internal/app"
	"github.com/siyara/storefront/internal/config"
	"github.com/siyara/storefront/pkg/logger"
)

// session holds what every subcommand needs once the root has run.
type session struct {
	envFiles []string
	logLevel string

	cfg        *config.Config
	logger     *slog.Logger
	components *app.Components
}

// Execute runs catalogctl with the process arguments.
func Execute(ctx context.Context) error {
	root, s := newRootCommand()
	defer s.close()
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the catalogctl command tree.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *session) {
	s := &session{}

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Browse the Siyara jewellery catalog",
		Long: `catalogctl searches and filters the storefront catalog, manages the
wishlist and prints WhatsApp order links.

Configuration comes from the same environment variables as the server,
optionally read from an env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd.Context(), cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return s.close()
		},
	}

	root.PersistentFlags().StringSliceVar(&s.envFiles, "env-file", []string{".env"}, "env files to read before the environment")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "wishlist", Title: "Wishlist Commands:"},
	)

	root.AddCommand(
		newSearchCommand(s),
		newShowCommand(s),
		newOrderLinkCommand(s),
		newWishlistCommand(s),
		newBrowseCommand(s),
	)

	return root, s
}

func (s *session) open(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(s.envFiles...)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logger.NewText("catalogctl", s.logLevel, cmd.ErrOrStderr())

	components, err := app.Build(ctx, cfg, s.logger)
	if err != nil {
		return fmt.Errorf("start catalogctl: %w", err)
	}
	s.components = components
	return nil
}

func (s *session) close() error {
	if s.components == nil {
		return nil
	}
	err := s.components.Close()
	s.components = nil
	return err
}
