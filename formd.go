package edgar

import "strconv"

// OfferingSalesAmounts holds the offeringSalesAmounts section of a Form D.
// TotalRemaining is expected to equal TotalOfferingAmount minus
// TotalAmountSold, but nothing here checks it.
type OfferingSalesAmounts struct {
	TotalOfferingAmount     int64  `json:"totalOfferingAmount"`
	TotalAmountSold         int64  `json:"totalAmountSold"`
	TotalRemaining          int64  `json:"totalRemaining"`
	ClarificationOfResponse string `json:"clarificationOfResponse"`
}

// InvestmentFundInfo describes a pooled investment fund issuer.
type InvestmentFundInfo struct {
	InvestmentFundType string `json:"investmentFundType"`

	// Is40Act is true whenever the is40Act element has any text at all,
	// including the literal "false".
	Is40Act bool `json:"is40Act"`
}

// IndustryGroup holds the industryGroup section of a Form D.
// InvestmentFundInfo is nil for issuers that are not pooled funds.
type IndustryGroup struct {
	IndustryGroupType  string              `json:"industryGroupType"`
	InvestmentFundInfo *InvestmentFundInfo `json:"investmentFundInfo,omitempty"`
}

// FormD is a Notice of Exempt Offering of Securities.
type FormD struct {
	CompanyData          CompanyData          `json:"companyData"`
	FilingValues         FilingValues         `json:"filingValues"`
	IndustryGroup        IndustryGroup        `json:"industryGroup"`
	OfferingSalesAmounts OfferingSalesAmounts `json:"offeringSalesAmounts"`
}

// FormDColumns is the column order used by Flatten and Row.
var FormDColumns = []string{
	"company_conformed_name",
	"central_index_key",
	"irs_number",
	"state_of_incorporation",
	"fiscal_year_end",
	"form_type",
	"film_number",
	"sec_file_number",
	"industry_group_type",
	"investment_fund_type",
	"is_40_act",
	"total_offering_amount",
	"total_amount_sold",
	"total_remaining",
}

// Flatten projects the record onto a single-level map keyed by FormDColumns.
// Absent optional fields map to nil.
func (f *FormD) Flatten() map[string]any {
	m := map[string]any{
		"company_conformed_name": f.CompanyData.CompanyConformedName,
		"central_index_key":      f.CompanyData.CentralIndexKey,
		"irs_number":             f.CompanyData.IRSNumber,
		"state_of_incorporation": f.CompanyData.StateOfIncorporation,
		"fiscal_year_end":        f.CompanyData.FiscalYearEnd,
		"form_type":              f.FilingValues.FormType,
		"film_number":            derefOrNil(f.FilingValues.FilmNumber),
		"sec_file_number":        derefOrNil(f.FilingValues.SecFileNumber),
		"industry_group_type":    f.IndustryGroup.IndustryGroupType,
		"investment_fund_type":   nil,
		"is_40_act":              nil,
		"total_offering_amount":  f.OfferingSalesAmounts.TotalOfferingAmount,
		"total_amount_sold":      f.OfferingSalesAmounts.TotalAmountSold,
		"total_remaining":        f.OfferingSalesAmounts.TotalRemaining,
	}
	if info := f.IndustryGroup.InvestmentFundInfo; info != nil {
		m["investment_fund_type"] = info.InvestmentFundType
		m["is_40_act"] = info.Is40Act
	}
	return m
}

// Row returns Flatten's values as strings in FormDColumns order.
// Nil values become empty strings.
func (f *FormD) Row() []string {
	flat := f.Flatten()
	row := make([]string, len(FormDColumns))
	for i, col := range FormDColumns {
		switch v := flat[col].(type) {
		case nil:
		case string:
			row[i] = v
		case int64:
			row[i] = strconv.FormatInt(v, 10)
		case bool:
			row[i] = strconv.FormatBool(v)
		}
	}
	return row
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
