package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExample(t *testing.T) {
	list := []Product{{ID: "1", Name: "Robot X", Price: 100000, Category: "robot", Stock: true, Rating: 4.5}}

	got := Filter(list, "robot", CategoryAll)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	assert.Empty(t, Filter(list, "boneka", CategoryAll))
}

func TestFilterExcludesNamesWithoutQuery(t *testing.T) {
	products := DefaultProducts()
	for _, query := range []string{"ro", "LEGO", "xyz", " ", "puzzle 1000"} {
		got := Filter(products, query, CategoryAll)
		for _, p := range products {
			contains := strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
			_, kept := Find(got, p.ID)
			assert.Equal(t, contains, kept, "query %q product %q", query, p.Name)
		}
	}
}

func TestFilterAllCategoryKeepsCount(t *testing.T) {
	products := DefaultProducts()
	assert.Len(t, Filter(products, "", CategoryAll), len(products))
	assert.Len(t, Filter(products, "", ""), len(products))
}

func TestFilterConjunctive(t *testing.T) {
	products := DefaultProducts()

	got := Filter(products, "robot", "robot")
	require.Len(t, got, 1)
	assert.Equal(t, "Robot Transformer Deluxe", got[0].Name)

	assert.Empty(t, Filter(products, "robot", "boneka"))

	lego := Filter(products, "", "lego")
	require.Len(t, lego, 1)
	assert.Equal(t, "3", lego[0].ID)
}

func TestFilterPreservesOrder(t *testing.T) {
	products := []Product{
		{ID: "a", Name: "Mobil Merah", Category: "mobil"},
		{ID: "b", Name: "Boneka", Category: "boneka"},
		{ID: "c", Name: "Mobil Biru", Category: "mobil"},
	}
	got := Filter(products, "mobil", CategoryAll)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Len(t, products, 3)
}
