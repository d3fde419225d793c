package utils

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kubealloc/dto"
)

// plainStyle strips borders and separators so the tree prefixes carry
// the structure on their own.
var plainStyle = table.Style{
	Name:   "StylePlain",
	Box:    table.StyleBoxDefault,
	Color:  table.ColorOptionsDefault,
	Format: table.FormatOptionsDefault,
	HTML:   table.DefaultHTMLOptions,
	Options: table.Options{
		DrawBorder:      false,
		SeparateColumns: false,
		SeparateFooter:  false,
		SeparateHeader:  false,
		SeparateRows:    false,
	},
	Title: table.TitleOptionsDefault,
}

// RenderCapacityTable writes the capacity report as an aligned text
// table, one row per group with its tree prefix
func RenderCapacityTable(w io.Writer, report dto.CapacityReportResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(plainStyle)

	t.AppendHeader(table.Row{"Resource", "Requested", "%Requested", "Limit", "%Limit", "Allocatable", "Free"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, row := range report.Rows {
		t.AppendRow(table.Row{
			row.Prefix + row.Label,
			row.Requested,
			fmt.Sprintf("%.0f%%", row.RequestedPercent),
			row.Limit,
			fmt.Sprintf("%.0f%%", row.LimitPercent),
			row.Allocatable,
			row.Free,
		})
	}

	t.Render()
}
