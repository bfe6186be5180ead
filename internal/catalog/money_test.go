package catalog

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rp\u00a0299.000", FormatPrice(299000))
	assert.Equal(t, "Rp\u00a085.000", FormatPrice(85000))
	assert.Equal(t, "Rp\u00a01.459.000", FormatPrice(1459000))
	assert.Equal(t, "Rp\u00a00", FormatPrice(0))
}

func TestOrderLink(t *testing.T) {
	p := Product{ID: "1", Name: "Robot & Co", Price: 299000}
	link := OrderLink("6285964362781", p)
	require.True(t, strings.HasPrefix(link, "https://wa.me/6285964362781?text="))
	assert.NotContains(t, link, "+")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Halo! Saya tertarik dengan produk:\n\n*Robot & Co*\nHarga: Rp\u00a0299.000\n\nApakah masih tersedia?", parsed.Query().Get("text"))
}

func TestContactLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/6285964362781", ContactLink("+6285964362781"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Mobil RC", CategoryLabel("mobil"))
	assert.Equal(t, "Semua", CategoryLabel(CategoryAll))
	assert.Equal(t, "SOON", CategoryLabel("SOON"))
	assert.Len(t, Categories(), 6)
}
