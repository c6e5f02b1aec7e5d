package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the page's rows as a spreadsheet, one column per dashboard column.
func WriteXLSX(w io.Writer, page *Page) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := page.Spec.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(page.Spec.Columns))
	for _, c := range page.Spec.Columns {
		header = append(header, c.Title)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(header) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			last, _ := excelize.CoordinatesToCellName(len(header), 1)
			_ = f.SetCellStyle(sheet, "A1", last, style)
		}
	}

	for i, row := range page.Rows {
		values := make([]any, 0, len(row.Cells))
		for _, c := range row.Cells {
			values = append(values, cellString(c))
		}
		addr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, addr, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteJSON writes the filtered source items unchanged.
func WriteJSON(w io.Writer, page *Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"dashboard": page.Spec.Name,
		"total":     len(page.Items),
		"data":      page.Items,
	})
}

func cellString(c Cell) string {
	if len(c.Images) == 0 {
		return c.Text
	}
	urls := make([]string, 0, len(c.Images))
	for _, img := range c.Images {
		urls = append(urls, img.URL)
	}
	return strings.Join(urls, ", ")
}
