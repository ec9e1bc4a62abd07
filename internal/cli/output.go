package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/service"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validOutput(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, outputTable, outputJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// renderTable writes rows under headers. Columns listed in right are
// right-aligned.
func renderTable(w io.Writer, headers []string, rows [][]string, right ...int) error {
	config := tablewriter.Config{}
	if len(right) > 0 {
		align := make([]tw.Align, len(headers))
		for i := range align {
			align[i] = tw.AlignLeft
		}
		for _, i := range right {
			align[i] = tw.AlignRight
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	table.Header(cells...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatPrice(currency string, price int64) string {
	return fmt.Sprintf("%s%d", currency, price)
}

func productRow(currency string, p domain.Product, wishlisted bool) []string {
	flags := make([]string, 0, 2)
	if p.IsNew {
		flags = append(flags, "new")
	}
	if wishlisted {
		flags = append(flags, "♥")
	}
	return []string{
		p.ID,
		p.Name,
		string(p.Category),
		p.Material,
		formatPrice(currency, p.Price),
		strings.Join(flags, " "),
	}
}

var productHeaders = []string{"ID", "Name", "Category", "Material", "Price", ""}

func renderProducts(w io.Writer, currency string, views []service.ProductView) error {
	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = productRow(currency, v.Product, v.Wishlisted)
	}
	return renderTable(w, productHeaders, rows, 4)
}

func renderProduct(w io.Writer, currency string, v *service.ProductView) error {
	rows := [][]string{
		{"ID", v.ID},
		{"Name", v.Name},
		{"Category", string(v.Category)},
		{"Price", formatPrice(currency, v.Price)},
		{"Material", v.Material},
		{"Description", v.Description},
		{"New", fmt.Sprintf("%t", v.IsNew)},
		{"Tags", strings.Join(v.Tags, ", ")},
		{"Wishlisted", fmt.Sprintf("%t", v.Wishlisted)},
		{"Images", strings.Join(v.Images, "\n")},
	}
	return renderTable(w, []string{"Field", "Value"}, rows)
}
