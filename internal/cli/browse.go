package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/siyara/storefront/internal/browse"
	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/search"
	"github.com/siyara/storefront/pkg/logger"
)

const browseHelp = `Type to search; results print once typing pauses.
  :cat <category>      select a category (All, Necklaces, Earrings, ...)
  :sort <order>        name, price-low, price-high or newest
  :price <min> <max>   limit the price range
  :material <name>     toggle a material filter
  :new                 toggle new arrivals only
  :clear               clear all filters
  :show                print the visible list now
  :wish <id>           add or remove a product from the wishlist
  :wishlist            print the wishlist
  :order <id>          print the WhatsApp order link
  :reset               back to all categories with no query
  :help                this text
  :quit                leave`

func newBrowseCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		GroupID: "catalog",
		Short:   "Browse the catalog interactively",
		Long: `Browse reads lines from stdin. Plain lines are search queries and are
debounced like typing in the storefront search box; lines starting with a
colon change the category, filters and wishlist.

` + browseHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logger.WithSessionID(cmd.Context(), uuid.NewString())

			wishlist, err := s.components.WishlistService.Wishlist(ctx)
			if err != nil {
				return err
			}

			sh := &shell{
				out:      cmd.OutOrStdout(),
				currency: s.cfg.OrderCurrency,
				s:        s,
			}
			sh.browser = browse.New(s.components.Store, wishlist, s.components.WishlistService,
				search.WithQuietPeriod(s.cfg.SearchDebounce),
				search.WithOnSettle(sh.settled),
			)
			defer sh.browser.Close()

			return sh.run(ctx, cmd.InOrStdin())
		},
	}
}

// shell drives a browser from line input. Output is serialized because
// settled searches print from the debounce goroutine.
type shell struct {
	mu       sync.Mutex
	out      io.Writer
	currency string
	s        *session
	browser  *browse.Browser
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	sh.printf("%d products. Type :help for commands.\n", sh.s.components.Store.Len())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ":") {
			sh.browser.SetQuery(line)
			continue
		}
		quit, err := sh.command(ctx, line)
		if err != nil {
			sh.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if sh.browser.Query() != sh.browser.SettledQuery() {
		sh.browser.Flush()
	}
	return nil
}

func (sh *shell) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	b := sh.browser

	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		sh.printf("%s\n", browseHelp)
		return false, nil
	case "cat", "category":
		c, ok := domain.ParseCategory(arg)
		if !ok {
			return false, fmt.Errorf("unknown category %q", arg)
		}
		b.SelectCategory(c)
	case "sort":
		order, ok := domain.ParseSortOrder(arg)
		if !ok {
			return false, fmt.Errorf("unknown sort order %q", arg)
		}
		f := b.Filters()
		f.SortBy = order
		b.SetFilters(f)
	case "price":
		r, err := parseRange(arg)
		if err != nil {
			return false, err
		}
		f := b.Filters()
		f.PriceRange = r
		b.SetFilters(f)
	case "material":
		material, ok := sh.material(arg)
		if !ok {
			return false, fmt.Errorf("unknown material %q", arg)
		}
		b.SetFilters(b.Filters().WithMaterial(material))
	case "new":
		f := b.Filters()
		f.IsNewOnly = !f.IsNewOnly
		b.SetFilters(f)
	case "clear":
		b.ClearFilters()
	case "show":
	case "wish":
		action, err := b.ToggleWishlist(ctx, arg)
		if err != nil {
			return false, err
		}
		sh.printf("%s: %s (%d saved)\n", action.Message(), arg, b.WishlistCount())
		return false, nil
	case "wishlist":
		sh.printWishlist()
		return false, nil
	case "order":
		p, ok := sh.s.components.Store.Get(arg)
		if !ok {
			return false, fmt.Errorf("product %q not found", arg)
		}
		sh.printf("%s\n", sh.s.components.Links.Link(p))
		return false, nil
	case "reset":
		b.Reset()
		return false, nil
	default:
		return false, fmt.Errorf("unknown command :%s", name)
	}

	sh.printResults()
	return false, nil
}

// material resolves name against the catalog's materials ignoring case.
func (sh *shell) material(name string) (string, bool) {
	for _, m := range sh.s.components.Store.Materials() {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}

func parseRange(arg string) (domain.PriceRange, error) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return domain.PriceRange{}, fmt.Errorf("usage: :price <min> <max>")
	}
	lo, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return domain.PriceRange{}, fmt.Errorf("invalid min price %q", fields[0])
	}
	hi, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return domain.PriceRange{}, fmt.Errorf("invalid max price %q", fields[1])
	}
	if lo < 0 || lo > hi {
		return domain.PriceRange{}, fmt.Errorf("invalid price range %d-%d", lo, hi)
	}
	return domain.PriceRange{Min: lo, Max: hi}, nil
}

func (sh *shell) settled(string, []domain.Product) {
	sh.printResults()
}

func (sh *shell) printResults() {
	b := sh.browser
	results := b.Results()
	stats := b.SearchStats()
	c := b.Criteria()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	fmt.Fprintf(sh.out, "[%s", c.Category)
	if stats.HasQuery {
		fmt.Fprintf(sh.out, " %q: %d results", c.Query, stats.TotalResults)
	}
	if n := b.ActiveFilterCount(); n > 0 {
		fmt.Fprintf(sh.out, ", %d filters", n)
	}
	fmt.Fprintf(sh.out, ", sorted by %s, ♥ %d]\n", c.Filters.SortBy, b.WishlistCount())

	if len(results) == 0 {
		fmt.Fprintln(sh.out, "No products found")
		return
	}
	rows := make([][]string, len(results))
	for i, p := range results {
		rows[i] = productRow(sh.currency, p, b.Wishlisted(p.ID))
	}
	if err := renderTable(sh.out, productHeaders, rows, 4); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *shell) printWishlist() {
	products := sh.browser.WishlistProducts()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.browser.WishlistCount() == 0 {
		fmt.Fprintln(sh.out, "Your wishlist is empty")
		return
	}
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = productRow(sh.currency, p, true)
	}
	if err := renderTable(sh.out, productHeaders, rows, 4); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *shell) printf(format string, args ...any) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fmt.Fprintf(sh.out, format, args...)
}
