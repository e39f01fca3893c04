package main

import (
	"fmt"

	"github.com/fwojciec/edgar"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := edgar.FormDFilter{Limit: c.Limit}
	if c.CIK != "" {
		filter.CentralIndexKey = &c.CIK
	}

	recs, err := deps.FormDs.FindFormDs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", edgar.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No filings found. Use 'edgar parse --save' to store some.")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(deps.Stdout)
	t.AppendHeader(table.Row{"ID", "CIK", "Company", "Form", "Offering", "Sold", "Parsed"})
	for _, rec := range recs {
		f := rec.FormD
		t.AppendRow(table.Row{
			rec.ID,
			f.CompanyData.CentralIndexKey,
			f.CompanyData.CompanyConformedName,
			f.FilingValues.FormType,
			f.OfferingSalesAmounts.TotalOfferingAmount,
			f.OfferingSalesAmounts.TotalAmountSold,
			rec.ParsedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()

	return nil
}
