package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV exports a View as CSV with the shared Header.
func WriteCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range v.Rows() {
		if err := cw.Write([]string{r.Section, r.Item, r.Display, r.Unit}); err != nil {
			return fmt.Errorf("failed to write row %q: %w", r.Item, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
