package filing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/edgar"
	"github.com/fwojciec/edgar/etree"
	"github.com/fwojciec/edgar/filing"
	"github.com/fwojciec/edgar/goquery"
	"github.com/fwojciec/edgar/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *filing.Builder {
	return filing.NewBuilder(goquery.NewIsolator(), etree.NewReader())
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestBuilder_FilingValues(t *testing.T) {
	t.Parallel()

	t.Run("reads filing values from text header", func(t *testing.T) {
		t.Parallel()

		doc := readTestdata(t, "0001980155-23-000002.txt")

		v := newBuilder().FilingValues(doc)

		assert.Equal(t, "D", v.FormType)
		require.NotNil(t, v.SecAct)
		assert.Equal(t, "1933 Act", *v.SecAct)
		require.NotNil(t, v.SecFileNumber)
		assert.Equal(t, "021-480011", *v.SecFileNumber)
		require.NotNil(t, v.FilmNumber)
		assert.Equal(t, "23501234", *v.FilmNumber)
	})

	t.Run("missing lines are absent", func(t *testing.T) {
		t.Parallel()

		v := newBuilder().FilingValues("FORM TYPE:\tD\n")

		assert.Equal(t, "D", v.FormType)
		assert.Nil(t, v.SecAct)
		assert.Nil(t, v.SecFileNumber)
		assert.Nil(t, v.FilmNumber)
	})

	t.Run("document without header", func(t *testing.T) {
		t.Parallel()

		v := newBuilder().FilingValues(readTestdata(t, "SampleFormD.xml"))

		assert.Empty(t, v.FormType)
		assert.Nil(t, v.SecAct)
	})
}

func TestBuilder_CompanyData(t *testing.T) {
	t.Parallel()

	t.Run("reads company data from text header", func(t *testing.T) {
		t.Parallel()

		doc := readTestdata(t, "0001980155-23-000002.txt")

		c := newBuilder().CompanyData(doc)

		assert.Equal(t, &edgar.CompanyData{
			CompanyConformedName: "Northwind Ventures Fund II, L.P.",
			CentralIndexKey:      "0001980155",
			IRSNumber:            "000000000",
			StateOfIncorporation: "DE",
			FiscalYearEnd:        "1231",
		}, c)
	})

	t.Run("company name needs a tab after the label", func(t *testing.T) {
		t.Parallel()

		c := newBuilder().CompanyData("COMPANY CONFORMED NAME:   Acme Corp\nCENTRAL INDEX KEY:   0000000001\n")

		assert.Empty(t, c.CompanyConformedName)
		assert.Equal(t, "0000000001", c.CentralIndexKey)
	})

	t.Run("missing lines are empty", func(t *testing.T) {
		t.Parallel()

		c := newBuilder().CompanyData("no header here")

		assert.Equal(t, &edgar.CompanyData{}, c)
	})
}

func TestBuilder_OfferingSalesAmounts(t *testing.T) {
	t.Parallel()

	t.Run("reads sample form D", func(t *testing.T) {
		t.Parallel()

		a, err := newBuilder().OfferingSalesAmounts(readTestdata(t, "SampleFormD.xml"))

		require.NoError(t, err)
		assert.Equal(t, &edgar.OfferingSalesAmounts{
			TotalOfferingAmount:     1000,
			TotalAmountSold:         100,
			TotalRemaining:          900,
			ClarificationOfResponse: "Clarification of Response",
		}, a)
	})

	t.Run("reads full submission text", func(t *testing.T) {
		t.Parallel()

		a, err := newBuilder().OfferingSalesAmounts(readTestdata(t, "0001980155-23-000002.txt"))

		require.NoError(t, err)
		assert.Equal(t, int64(111000), a.TotalOfferingAmount)
		assert.Equal(t, int64(111000), a.TotalAmountSold)
		assert.Equal(t, int64(0), a.TotalRemaining)
		assert.Equal(t, "Amounts shown here include totals from the Issuer and a parallel fund of the Issuer.", a.ClarificationOfResponse)
	})

	t.Run("clarification is optional", func(t *testing.T) {
		t.Parallel()

		doc := `<edgarSubmission><offeringSalesAmounts>
			<totalOfferingAmount> 500 </totalOfferingAmount>
			<totalAmountSold>200</totalAmountSold>
			<totalRemaining>300</totalRemaining>
		</offeringSalesAmounts></edgarSubmission>`

		a, err := newBuilder().OfferingSalesAmounts(doc)

		require.NoError(t, err)
		assert.Equal(t, int64(500), a.TotalOfferingAmount)
		assert.Empty(t, a.ClarificationOfResponse)
	})

	t.Run("does not reconcile totals", func(t *testing.T) {
		t.Parallel()

		doc := `<edgarSubmission><offeringSalesAmounts>
			<totalOfferingAmount>10</totalOfferingAmount>
			<totalAmountSold>1</totalAmountSold>
			<totalRemaining>1</totalRemaining>
		</offeringSalesAmounts></edgarSubmission>`

		a, err := newBuilder().OfferingSalesAmounts(doc)

		require.NoError(t, err)
		assert.Equal(t, int64(1), a.TotalRemaining)
	})

	t.Run("non-numeric total is invalid", func(t *testing.T) {
		t.Parallel()

		doc := `<edgarSubmission><offeringSalesAmounts>
			<totalOfferingAmount>Indefinite</totalOfferingAmount>
			<totalAmountSold>100</totalAmountSold>
			<totalRemaining>0</totalRemaining>
		</offeringSalesAmounts></edgarSubmission>`

		_, err := newBuilder().OfferingSalesAmounts(doc)

		assert.Equal(t, edgar.EINVALID, edgar.ErrorCode(err))
		assert.Contains(t, edgar.ErrorMessage(err), "totalOfferingAmount")
	})

	t.Run("missing total is invalid", func(t *testing.T) {
		t.Parallel()

		doc := `<edgarSubmission><offeringSalesAmounts>
			<totalOfferingAmount>100</totalOfferingAmount>
			<totalRemaining>0</totalRemaining>
		</offeringSalesAmounts></edgarSubmission>`

		_, err := newBuilder().OfferingSalesAmounts(doc)

		assert.Equal(t, edgar.EINVALID, edgar.ErrorCode(err))
		assert.Contains(t, edgar.ErrorMessage(err), "totalAmountSold")
	})

	t.Run("document without submission is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := newBuilder().OfferingSalesAmounts("FORM TYPE:\tD\n")

		assert.Equal(t, edgar.EINVALID, edgar.ErrorCode(err))
	})

	t.Run("malformed fragment is a parse failure", func(t *testing.T) {
		t.Parallel()

		b := filing.NewBuilder(&mock.Isolator{
			IsolateFn: func(text, tag string) (string, bool) {
				return "<offeringSalesAmounts><totalOfferingAmount>", true
			},
		}, etree.NewReader())

		_, err := b.OfferingSalesAmounts("anything")

		assert.Equal(t, edgar.EMALFORMED, edgar.ErrorCode(err))
	})

	t.Run("isolates submission before section", func(t *testing.T) {
		t.Parallel()

		var tags []string
		b := filing.NewBuilder(&mock.Isolator{
			IsolateFn: func(text, tag string) (string, bool) {
				tags = append(tags, tag)
				return "", false
			},
		}, etree.NewReader())

		_, err := b.OfferingSalesAmounts("doc")

		require.Error(t, err)
		assert.Equal(t, []string{"edgarSubmission", "offeringSalesAmounts"}, tags)
	})
}

func TestBuilder_IndustryGroup(t *testing.T) {
	t.Parallel()

	t.Run("reads sample form D", func(t *testing.T) {
		t.Parallel()

		g, err := newBuilder().IndustryGroup(readTestdata(t, "SampleFormD.xml"))

		require.NoError(t, err)
		assert.Equal(t, "Pooled Investment Fund", g.IndustryGroupType)
		require.NotNil(t, g.InvestmentFundInfo)
		assert.Equal(t, "Venture Capital Fund", g.InvestmentFundInfo.InvestmentFundType)
		assert.True(t, g.InvestmentFundInfo.Is40Act)
	})

	t.Run("any is40Act text is truthy", func(t *testing.T) {
		t.Parallel()

		g, err := newBuilder().IndustryGroup(readTestdata(t, "0001980155-23-000002.txt"))

		require.NoError(t, err)
		require.NotNil(t, g.InvestmentFundInfo)
		assert.Equal(t, "Venture Capital Fund", g.InvestmentFundInfo.InvestmentFundType)
		assert.True(t, g.InvestmentFundInfo.Is40Act)
	})

	t.Run("empty is40Act is false", func(t *testing.T) {
		t.Parallel()

		doc := `<edgarSubmission><industryGroup>
			<industryGroupType>Pooled Investment Fund</industryGroupType>
			<investmentFundInfo><investmentFundType>Hedge Fund</investmentFundType><is40Act></is40Act></investmentFundInfo>
		</industryGroup></edgarSubmission>`

		g, err := newBuilder().IndustryGroup(doc)

		require.NoError(t, err)
		require.NotNil(t, g.InvestmentFundInfo)
		assert.Equal(t, "Hedge Fund", g.InvestmentFundInfo.InvestmentFundType)
		assert.False(t, g.InvestmentFundInfo.Is40Act)
	})

	t.Run("operating company has no fund info", func(t *testing.T) {
		t.Parallel()

		doc := `<edgarSubmission><industryGroup><industryGroupType>Biotechnology</industryGroupType></industryGroup></edgarSubmission>`

		g, err := newBuilder().IndustryGroup(doc)

		require.NoError(t, err)
		assert.Equal(t, &edgar.IndustryGroup{IndustryGroupType: "Biotechnology"}, g)
	})

	t.Run("document without submission is empty", func(t *testing.T) {
		t.Parallel()

		g, err := newBuilder().IndustryGroup("no xml")

		require.NoError(t, err)
		assert.Equal(t, &edgar.IndustryGroup{}, g)
	})
}

func TestBuilder_FormD(t *testing.T) {
	t.Parallel()

	t.Run("composes all records", func(t *testing.T) {
		t.Parallel()

		f, err := newBuilder().FormD(readTestdata(t, "0001980155-23-000002.txt"))

		require.NoError(t, err)
		assert.Equal(t, "Northwind Ventures Fund II, L.P.", f.CompanyData.CompanyConformedName)
		assert.Equal(t, "D", f.FilingValues.FormType)
		assert.Equal(t, "Pooled Investment Fund", f.IndustryGroup.IndustryGroupType)
		assert.Equal(t, int64(111000), f.OfferingSalesAmounts.TotalOfferingAmount)
	})

	t.Run("building twice yields equal records", func(t *testing.T) {
		t.Parallel()

		doc := readTestdata(t, "0001980155-23-000002.txt")
		b := newBuilder()

		first, err := b.FormD(doc)
		require.NoError(t, err)
		second, err := b.FormD(doc)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("wraps builder errors", func(t *testing.T) {
		t.Parallel()

		_, err := newBuilder().FormD("FORM TYPE:\tD\n")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "offering sales amounts")
		assert.Equal(t, edgar.EINVALID, edgar.ErrorCode(err))
	})
}

func TestBuilder_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("maps standalone transaction table", func(t *testing.T) {
		t.Parallel()

		tree, err := newBuilder().Ownership(readTestdata(t, "form4_table.txt"))

		require.NoError(t, err)
		assert.Equal(t, edgar.Map{
			"nonDerivativeTable": edgar.Map{
				"nonDerivativeTransaction": edgar.List{
					edgar.Map{
						"securityTitle":   edgar.Text("Common Stock"),
						"transactionDate": edgar.Text("2021-05-14"),
						"transactionCoding": edgar.Map{
							"transactionFormType": edgar.Text("5"),
							"transactionCode":     edgar.Text("G"),
							"equitySwapInvolved":  edgar.Text("0"),
						},
						"transactionTimeliness": edgar.Text("E"),
						"transactionAmounts": edgar.Map{
							"transactionShares":               edgar.Text("4010"),
							"transactionPricePerShare":        edgar.Text("0"),
							"transactionAcquiredDisposedCode": edgar.Text("D"),
						},
						"postTransactionAmounts": edgar.Map{
							"sharesOwnedFollowingTransaction": edgar.Text("324164"),
						},
						"ownershipNature": edgar.Map{
							"directOrIndirectOwnership": edgar.Text("D"),
						},
					},
					edgar.Map{
						"securityTitle":   edgar.Text("Common Stock"),
						"transactionDate": edgar.Text("2021-08-02"),
						"transactionCoding": edgar.Map{
							"transactionFormType": edgar.Text("4"),
							"transactionCode":     edgar.Text("S"),
							"equitySwapInvolved":  edgar.Text("0"),
						},
						"transactionAmounts": edgar.Map{
							"transactionShares":               edgar.Text("15600"),
							"transactionPricePerShare":        edgar.Text("145.83"),
							"transactionAcquiredDisposedCode": edgar.Text("D"),
						},
						"postTransactionAmounts": edgar.Map{
							"sharesOwnedFollowingTransaction": edgar.Text("308564"),
						},
						"ownershipNature": edgar.Map{
							"directOrIndirectOwnership": edgar.Text("D"),
						},
					},
				},
			},
		}, tree)
	})

	t.Run("maps full ownership document", func(t *testing.T) {
		t.Parallel()

		tree, err := newBuilder().Ownership(readTestdata(t, "form4_document.txt"))

		require.NoError(t, err)

		symbol, ok := tree.Text("issuer", "issuerTradingSymbol")
		assert.True(t, ok)
		assert.Equal(t, "EXMP", symbol)

		shares, ok := tree.Text("nonDerivativeTable", "nonDerivativeTransaction", "transactionAmounts", "transactionShares")
		assert.True(t, ok)
		assert.Equal(t, "2500", shares)

		price, ok := tree.Text("nonDerivativeTable", "nonDerivativeTransaction", "transactionAmounts", "transactionPricePerShare")
		assert.True(t, ok)
		assert.Equal(t, "125.07", price)

		rsu, ok := tree.Text("derivativeTable", "derivativeTransaction", "securityTitle")
		assert.True(t, ok)
		assert.Equal(t, "Restricted Stock Unit", rsu)

		footnote, ok := tree.Text("footnotes", "footnote")
		assert.True(t, ok)
		assert.Equal(t, "Weighted average price.", footnote)
	})

	t.Run("document without tables is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := newBuilder().Ownership("<TYPE>4\n")

		assert.Equal(t, edgar.EINVALID, edgar.ErrorCode(err))
	})

	t.Run("malformed table is a parse failure", func(t *testing.T) {
		t.Parallel()

		b := filing.NewBuilder(&mock.Isolator{
			IsolateRawFn: func(text, tag string) (string, bool) {
				if tag == "nonDerivativeTable" {
					return "<nonDerivativeTable><row></nonDerivativeTable>", true
				}
				return "", false
			},
		}, etree.NewReader())

		_, err := b.Ownership("doc")

		assert.Equal(t, edgar.EMALFORMED, edgar.ErrorCode(err))
		assert.Contains(t, err.Error(), "nonDerivativeTable")
	})
}
