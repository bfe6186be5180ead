package catalog

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the product list as CSV with a header row.
func WriteCSV(w io.Writer, products []Product) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "name", "category", "price", "stock", "rating", "description", "image"}); err != nil {
		return err
	}
	for _, p := range products {
		if err := writer.Write([]string{
			p.ID,
			p.Name,
			p.Category,
			strconv.FormatInt(p.Price, 10),
			strconv.FormatBool(p.Stock),
			strconv.FormatFloat(p.Rating, 'f', -1, 64),
			p.Description,
			p.Image,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
