package catalog

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, DefaultProducts()[:2]))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"id", "name", "category", "price", "stock", "rating", "description", "image"}, records[0])
	require.Equal(t, []string{"1", "Robot Transformer Deluxe", "robot", "299000", "true", "4.8", "", PlaceholderImage}, records[1])
}
