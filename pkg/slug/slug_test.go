package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	t.Run("lowercases and hyphenates", func(t *testing.T) {
		assert.Equal(t, "rice-grains", From("Rice & Grains"))
	})

	t.Run("strips accents", func(t *testing.T) {
		assert.Equal(t, "cafe-creme", From("Café Crème"))
	})

	t.Run("collapses repeated separators", func(t *testing.T) {
		assert.Equal(t, "a-b", From("a --  b"))
	})

	t.Run("trims leading and trailing hyphens", func(t *testing.T) {
		assert.Equal(t, "snacks", From("  Snacks!  "))
	})

	t.Run("keeps digits", func(t *testing.T) {
		assert.Equal(t, "top-10-deals", From("Top 10 Deals"))
	})

	t.Run("empty input yields empty slug", func(t *testing.T) {
		assert.Equal(t, "", From(""))
		assert.Equal(t, "", From("!!!"))
	})
}
