package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siyara/storefront/internal/domain"
)

func fixtures() []domain.Product {
	return []domain.Product{
		{ID: "NK001", Name: "Royal Cascade Necklace", Description: "Multi-layered necklace", Material: "Gold-plated brass", Category: domain.CategoryNecklaces},
		{ID: "ER002", Name: "Pearl Drop Studs", Description: "Classic pearl drop earrings", Material: "Gold-plated with synthetic pearls", Category: domain.CategoryEarrings},
		{ID: "BR001", Name: "Delicate Pearl Bracelet", Description: "Lustrous pearls", Material: "Gold-plated chain with synthetic pearls", Category: domain.CategoryBracelets, Tags: []string{"bridal"}},
		{ID: "RG001", Name: "Vintage Rose Ring", Description: "Rose-cut center stone", Material: "Sterling silver with cubic zirconia", Category: domain.CategoryRings},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"gold", "pearl"}, Tokenize("  Gold \t  PEARL\n"))
	assert.Empty(t, Tokenize("   "))
}

func TestSearchableText_IncludesTags(t *testing.T) {
	text := SearchableText(fixtures()[2])
	assert.Equal(t, "delicate pearl bracelet lustrous pearls gold-plated chain with synthetic pearls bracelets bridal", text)
}

func TestMatch_BlankQueryReturnsInput(t *testing.T) {
	products := fixtures()
	assert.Equal(t, ids(products), ids(Match(products, "")))
	assert.Equal(t, ids(products), ids(Match(products, "  \t ")))
}

func TestMatch_AllWordsMustMatch(t *testing.T) {
	got := Match(fixtures(), "gold pearl")
	assert.Equal(t, []string{"ER002", "BR001"}, ids(got))
}

func TestMatch_WordOrderIrrelevant(t *testing.T) {
	products := fixtures()
	assert.Equal(t, ids(Match(products, "pearl gold")), ids(Match(products, "gold pearl")))
}

func TestMatch_CaseInsensitiveSubstring(t *testing.T) {
	assert.Equal(t, []string{"RG001"}, ids(Match(fixtures(), "ZIRCON")))
}

func TestMatch_MatchesCategoryAndTags(t *testing.T) {
	assert.Equal(t, []string{"ER002"}, ids(Match(fixtures(), "earrings")))
	assert.Equal(t, []string{"BR001"}, ids(Match(fixtures(), "bridal")))
}

func TestMatch_NoResults(t *testing.T) {
	assert.Empty(t, Match(fixtures(), "platinum"))
}

func TestMatch_LiteralNotPattern(t *testing.T) {
	assert.Empty(t, Match(fixtures(), "gold.*"))
}

func TestMatch_ResultIsSubsequence(t *testing.T) {
	products := fixtures()
	got := Match(products, "pearl")

	j := 0
	for _, p := range products {
		if j < len(got) && got[j].ID == p.ID {
			j++
		}
	}
	assert.Equal(t, len(got), j)
}
