package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/siyara/storefront/internal/domain"
	apperrors "github.com/siyara/storefront/pkg/errors"
	"github.com/siyara/storefront/pkg/validator"
)

//go:embed data/catalog.json
var defaultCatalog []byte

// DefaultSource names the embedded catalog in errors and logs.
const DefaultSource = "embedded:catalog.json"

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func init() {
	validator.Register("product_category", func(v string) bool {
		return domain.Category(v).IsProductCategory()
	})
}

// FormatFromPath picks the document format from the file extension.
// Anything other than .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a catalog document. source is used only to
// label errors.
func Parse(data []byte, format Format, source string) (*domain.CatalogDocument, error) {
	var doc domain.CatalogDocument

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, apperrors.BadCatalog(source, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, apperrors.BadCatalog(source, "decode: "+err.Error())
	}

	if err := Validate(&doc, source); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks field constraints and id uniqueness.
func Validate(doc *domain.CatalogDocument, source string) error {
	if err := validator.Validate(doc); err != nil {
		return apperrors.BadCatalog(source, err.Error())
	}

	seen := make(map[string]int, len(doc.Products))
	for i, p := range doc.Products {
		if first, ok := seen[p.ID]; ok {
			return apperrors.BadCatalog(source,
				fmt.Sprintf("duplicate product id %q at products[%d] and products[%d]", p.ID, first, i))
		}
		seen[p.ID] = i
	}
	return nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*domain.CatalogDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, FormatFromPath(path), path)
}

// LoadDefault returns the catalog compiled into the binary.
func LoadDefault() (*domain.CatalogDocument, error) {
	return Parse(defaultCatalog, FormatJSON, DefaultSource)
}

// Load opens the catalog at path, or the embedded catalog when path is
// empty, and indexes it.
func Load(path string) (*Store, error) {
	var (
		doc *domain.CatalogDocument
		err error
	)
	if path == "" {
		doc, err = LoadDefault()
	} else {
		doc, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return NewStore(doc), nil
}
