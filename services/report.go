package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"costofliving/models"
)

// MonthlyTotals sums a result into a monthly budget, once renting in the
// city centre and once renting outside it.
func MonthlyTotals(r *models.CostResult) (center, outside float64) {
	c := r.Categories
	rest := c.Groceries.Monthly + c.Transportation.Monthly + c.Utilities.Monthly + c.Entertainment.Monthly
	return c.Housing.CityCenter + rest, c.Housing.Outside + rest
}

// ReportPrinter renders a CostResult for the terminal.
type ReportPrinter struct {
	out io.Writer
}

func NewReportPrinter(out io.Writer) *ReportPrinter {
	return &ReportPrinter{out: out}
}

func (p *ReportPrinter) Print(r *models.CostResult) {
	c := r.Categories

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("Cost of living: %s (%s, %s)", r.City, r.Currency, r.DataQuality))
	t.AppendHeader(table.Row{"Category", "Monthly"})
	t.AppendRows([]table.Row{
		{c.Housing.Label + " (city centre)", money(c.Housing.CityCenter)},
		{c.Housing.Label + " (outside centre)", money(c.Housing.Outside)},
		{c.Groceries.Label, money(c.Groceries.Monthly)},
		{c.Transportation.Label, money(c.Transportation.Monthly)},
		{c.Utilities.Label, money(c.Utilities.Monthly)},
		{c.Entertainment.Label, money(c.Entertainment.Monthly)},
	})
	center, outside := MonthlyTotals(r)
	t.AppendSeparator()
	t.AppendFooter(table.Row{"Total (centre / outside)", money(center) + " / " + money(outside)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()

	fmt.Fprintf(p.out, "Sources: %s\n", strings.Join(r.Sources, "; "))

	if len(r.Discussions) == 0 {
		return
	}
	d := table.NewWriter()
	d.SetOutputMirror(p.out)
	d.SetStyle(table.StyleLight)
	d.AppendHeader(table.Row{"#", "Discussion", "Subreddit", "Score", "Comments"})
	for i, disc := range r.Discussions {
		d.AppendRow(table.Row{i + 1, truncate(disc.Title, 60), "r/" + disc.Subreddit, disc.Score, disc.Comments})
	}
	d.Render()
}

func money(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
