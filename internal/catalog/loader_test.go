package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siyara/storefront/internal/domain"
	apperrors "github.com/siyara/storefront/pkg/errors"
)

func TestLoadDefault_OriginalCatalog(t *testing.T) {
	doc, err := LoadDefault()
	require.NoError(t, err)

	require.Len(t, doc.Products, 12)
	assert.Equal(t, "919876543210", doc.WhatsAppContact)

	first := doc.Products[0]
	assert.Equal(t, "NK001", first.ID)
	assert.Equal(t, "Royal Cascade Necklace", first.Name)
	assert.Equal(t, int64(2499), first.Price)
	assert.Equal(t, domain.CategoryNecklaces, first.Category)
	assert.True(t, first.IsNew)
	assert.Len(t, first.Images, 2)

	var newCount int
	for _, p := range doc.Products {
		if p.IsNew {
			newCount++
		}
		assert.Empty(t, p.Tags, p.ID)
	}
	assert.Equal(t, 4, newCount)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("catalog.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("/etc/siyara/catalog.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("catalog.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("catalog"))
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
whatsappContact: "15550001111"
products:
  - id: AN001
    name: Ankle Charm
    price: 0
    category: Rings
    images: ["https://img.example.com/an001.jpg"]
    material: Brass
    isNew: true
    tags: [anklet, charm]
`)
	doc, err := Parse(data, FormatYAML, "inline.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Products, 1)
	assert.Equal(t, []string{"anklet", "charm"}, doc.Products[0].Tags)
	assert.True(t, doc.Products[0].IsNew)
	assert.Equal(t, int64(0), doc.Products[0].Price)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		reason string
	}{
		{
			name:   "missing contact",
			doc:    `{"products":[]}`,
			reason: "whatsappContact",
		},
		{
			name:   "negative price",
			doc:    `{"whatsappContact":"1","products":[{"id":"A","name":"A","price":-1,"category":"Rings","images":["https://x/a.jpg"]}]}`,
			reason: "products[0].price",
		},
		{
			name:   "all is not a product category",
			doc:    `{"whatsappContact":"1","products":[{"id":"A","name":"A","price":1,"category":"All","images":["https://x/a.jpg"]}]}`,
			reason: "products[0].category",
		},
		{
			name:   "no images",
			doc:    `{"whatsappContact":"1","products":[{"id":"A","name":"A","price":1,"category":"Rings","images":[]}]}`,
			reason: "products[0].images",
		},
		{
			name:   "duplicate id",
			doc:    `{"whatsappContact":"1","products":[{"id":"A","name":"A","price":1,"category":"Rings","images":["https://x/a.jpg"]},{"id":"A","name":"B","price":2,"category":"Sets","images":["https://x/b.jpg"]}]}`,
			reason: `duplicate product id "A"`,
		},
		{
			name:   "malformed json",
			doc:    `{"products":`,
			reason: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON, "test.json")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrBadCatalog)
			assert.Contains(t, err.Error(), tt.reason)
			assert.Contains(t, err.Error(), "test.json")
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"whatsappContact":"1","products":[{"id":"A","name":"A","price":1,"category":"Rings","images":["https://x/a.jpg"]}]}`), 0o600))

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "1", store.Contact())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, store.Len())
}
