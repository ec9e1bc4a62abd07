package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siyara/storefront/internal/service"
)

func newWishlistCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wishlist",
		Aliases: []string{"wl"},
		GroupID: "wishlist",
		Short:   "Show or change the wishlist",
	}
	cmd.AddCommand(newWishlistListCommand(s), newWishlistToggleCommand(s))
	return cmd
}

func newWishlistListCommand(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List wishlisted products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			view, err := s.components.CatalogService.Wishlist(cmd.Context())
			if err != nil {
				return err
			}
			return renderWishlist(cmd, s.cfg.OrderCurrency, output, view)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json)")
	return cmd
}

func newWishlistToggleCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <product-id>",
		Short:   "Add a product to the wishlist, or remove it if already there",
		Args:    cobra.ExactArgs(1),
		Example: `  catalogctl wishlist toggle NK001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, action, err := s.components.WishlistService.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d saved)\n", action.Message(), args[0], w.Len())
			return nil
		},
	}
}

func renderWishlist(cmd *cobra.Command, currency, output string, view *service.WishlistView) error {
	out := cmd.OutOrStdout()
	if output == outputJSON {
		return writeJSON(out, view)
	}
	if view.Count == 0 {
		fmt.Fprintln(out, "Your wishlist is empty")
		return nil
	}

	rows := make([][]string, len(view.Products))
	for i, p := range view.Products {
		rows[i] = productRow(currency, p, true)
	}
	if err := renderTable(out, productHeaders, rows, 4); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d saved\n", view.Count)
	return nil
}
