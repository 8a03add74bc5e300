package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format is an export format.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported export formats.
func Formats() []Format {
	return []Format{FormatText, FormatCSV, FormatXLSX, FormatPDF}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "txt" {
		return FormatText, nil
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write renders v in format f.
func Write(w io.Writer, f Format, v View) error {
	switch f {
	case FormatText:
		return WriteText(w, v)
	case FormatCSV:
		return WriteCSV(w, v)
	case FormatXLSX:
		return WriteXLSX(w, v)
	case FormatPDF:
		return WritePDF(w, v)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}
