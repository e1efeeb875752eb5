package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vitalvas/binlookup/binlookup"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()

	t.SetStyle(table.Style{
		Box: table.BoxStyle{
			PaddingLeft:  " ",
			PaddingRight: " ",
		},
		Format: table.FormatOptions{
			Header: text.FormatUpper,
			Row:    text.FormatDefault,
		},
		Options: table.Options{
			DrawBorder:      false,
			SeparateColumns: false,
			SeparateHeader:  false,
			SeparateRows:    false,
		},
	})
	t.SetOutputMirror(w)

	return t
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func printBINInfo(w io.Writer, format string, infos ...binlookup.BINInfo) error {
	if format == outputJSON {
		if len(infos) == 1 {
			return writeJSON(w, infos[0])
		}

		return writeJSON(w, infos)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Issuer", "Country", "Product", "Card Type", "Sub Type", "Low", "High"})

	for _, info := range infos {
		t.AppendRow(table.Row{
			info.IssuerName,
			info.CountryCode,
			info.ProductType,
			info.CardType,
			info.ProductSubType,
			info.LowAccountRange,
			info.HighAccountRange,
		})
	}

	t.Render()

	return nil
}

func printPage(w io.Writer, format string, page *binlookup.Page) error {
	if format == outputJSON {
		return writeJSON(w, page)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Low", "High", "Issuer", "Country", "Product"})

	for _, r := range page.Content {
		t.AppendRow(table.Row{r.LowAccountRange, r.HighAccountRange, r.IssuerName, r.CountryCode, r.ProductType})
	}

	t.AppendFooter(table.Row{"", "", "", "Page", fmtPage(page)})
	t.Render()

	return nil
}

func fmtPage(page *binlookup.Page) string {
	return fmt.Sprintf("%d/%d (%d total)", page.Number+1, page.TotalPages, page.TotalElements)
}
