package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/service"
	"github.com/siyara/storefront/pkg/pagination"
)

type searchOptions struct {
	category  string
	minPrice  int64
	maxPrice  int64
	materials []string
	newOnly   bool
	sort      string
	page      int
	perPage   int
	output    string
}

func newSearchCommand(s *session) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:     "search [query...]",
		Aliases: []string{"ls", "list"},
		GroupID: "catalog",
		Short:   "Search and filter the catalog",
		Long: `Search narrows the catalog by category, then by a case-insensitive
substring match over name, description, material, category and tags, then
by price, material and new-arrival filters, and sorts what is left.`,
		Example: `  catalogctl search pearl
  catalogctl search --category rings --sort price-low
  catalogctl search --material Gold --material Silver --max-price 20000
  catalogctl search --new-only -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(opts.output); err != nil {
				return err
			}
			input, err := opts.input(cmd, strings.Join(args, " "))
			if err != nil {
				return err
			}

			result, err := s.components.CatalogService.List(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, result)
			}
			if result.TotalCount == 0 {
				fmt.Fprintln(out, "No products found")
				return nil
			}
			if err := renderProducts(out, s.cfg.OrderCurrency, result.Data); err != nil {
				return err
			}
			fmt.Fprintln(out, summary(result))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.category, "category", "c", "", "category to browse (All, Necklaces, Earrings, Bracelets, Rings, Sets)")
	f.Int64Var(&opts.minPrice, "min-price", 0, "lowest price to show")
	f.Int64Var(&opts.maxPrice, "max-price", 0, "highest price to show")
	f.StringSliceVarP(&opts.materials, "material", "m", nil, "materials to include (repeatable)")
	f.BoolVar(&opts.newOnly, "new-only", false, "only show new arrivals")
	f.StringVarP(&opts.sort, "sort", "s", string(domain.SortByName), "sort order (name, price-low, price-high, newest)")
	f.IntVar(&opts.page, "page", 1, "page number")
	f.IntVar(&opts.perPage, "per-page", pagination.MaxPerPage, "results per page")
	f.StringVarP(&opts.output, "output", "o", outputTable, "output format (table, json)")

	return cmd
}

func (o *searchOptions) input(cmd *cobra.Command, query string) (service.ListInput, error) {
	category, ok := domain.ParseCategory(o.category)
	if !ok {
		return service.ListInput{}, fmt.Errorf("unknown category %q", o.category)
	}
	sortBy, ok := domain.ParseSortOrder(o.sort)
	if !ok {
		return service.ListInput{}, fmt.Errorf("unknown sort order %q", o.sort)
	}

	input := service.ListInput{
		Category:   category,
		Query:      query,
		Materials:  o.materials,
		NewOnly:    o.newOnly,
		SortBy:     sortBy,
		Pagination: pagination.New(o.page, o.perPage),
	}
	if cmd.Flags().Changed("min-price") {
		input.MinPrice = &o.minPrice
	}
	if cmd.Flags().Changed("max-price") {
		input.MaxPrice = &o.maxPrice
	}
	return input, nil
}

func summary(r *service.ListResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d products", len(r.Data), r.TotalCount)
	if r.TotalPages > 1 {
		fmt.Fprintf(&b, " (page %d/%d)", r.Page, r.TotalPages)
	}
	if r.Search.HasQuery {
		fmt.Fprintf(&b, "; %d search results", r.Search.TotalResults)
	}
	if r.ActiveFilterCount > 0 {
		fmt.Fprintf(&b, "; %d filters active", r.ActiveFilterCount)
	}
	return b.String()
}

func newShowCommand(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "show <product-id>",
		GroupID: "catalog",
		Short:   "Show one product",
		Args:    cobra.ExactArgs(1),
		Example: `  catalogctl show NK001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			view, err := s.components.CatalogService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return renderProduct(cmd.OutOrStdout(), s.cfg.OrderCurrency, view)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json)")
	return cmd
}

func newOrderLinkCommand(s *session) *cobra.Command {
	var (
		output      string
		showMessage bool
	)

	cmd := &cobra.Command{
		Use:     "order-link <product-id>",
		Aliases: []string{"order"},
		GroupID: "catalog",
		Short:   "Print the WhatsApp order link for a product",
		Args:    cobra.ExactArgs(1),
		Example: `  catalogctl order-link RG001
  catalogctl order-link RG001 --message`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			link, err := s.components.CatalogService.OrderLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == outputJSON {
				return writeJSON(out, link)
			}
			if showMessage {
				fmt.Fprintln(out, link.Message)
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, link.URL)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json)")
	cmd.Flags().BoolVar(&showMessage, "message", false, "also print the prefilled message")
	return cmd
}
