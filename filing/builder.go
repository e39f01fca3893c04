// Package filing builds edgar records from raw filing text. Each builder
// re-reads the whole document with the extractors it needs, so records can
// be built independently and in any order.
package filing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/edgar"
)

// Text header patterns. The company name pattern expects a tab right after
// the colon, which is how EDGAR formats that line; the others accept any
// whitespace.
var (
	formTypeRe      = regexp.MustCompile(`FORM TYPE:\s+(.*)`)
	secActRe        = regexp.MustCompile(`SEC ACT:\s+(.*)`)
	secFileNumberRe = regexp.MustCompile(`SEC FILE NUMBER:\s+(.*)`)
	filmNumberRe    = regexp.MustCompile(`FILM NUMBER:\s+(.*)`)

	companyConformedNameRe = regexp.MustCompile(`COMPANY CONFORMED NAME:\t\s+(.*)`)
	centralIndexKeyRe      = regexp.MustCompile(`CENTRAL INDEX KEY:\s+(.*)`)
	irsNumberRe            = regexp.MustCompile(`IRS NUMBER:\s+(.*)`)
	stateOfIncorporationRe = regexp.MustCompile(`STATE OF INCORPORATION:\s+(.*)`)
	fiscalYearEndRe        = regexp.MustCompile(`FISCAL YEAR END:\s+(.*)`)
)

// XML element names used by the Form D and ownership builders.
const (
	tagEdgarSubmission         = "edgarSubmission"
	tagOfferingSalesAmounts    = "offeringSalesAmounts"
	tagTotalOfferingAmount     = "totalOfferingAmount"
	tagTotalAmountSold         = "totalAmountSold"
	tagTotalRemaining          = "totalRemaining"
	tagClarificationOfResponse = "clarificationOfResponse"
	tagIndustryGroupType       = "industryGroupType"
	tagInvestmentFundType      = "investmentFundType"
	tagIs40Act                 = "is40Act"
	tagOwnershipDocument       = "ownershipDocument"
	tagNonDerivativeTable      = "nonDerivativeTable"
	tagDerivativeTable         = "derivativeTable"
)

// Builder assembles edgar records from raw filing text.
type Builder struct {
	Isolator edgar.Isolator
	Reader   edgar.TagReader
}

// NewBuilder creates a Builder from an isolator and a strict tag reader.
func NewBuilder(isolator edgar.Isolator, reader edgar.TagReader) *Builder {
	return &Builder{Isolator: isolator, Reader: reader}
}

// FilingValues reads the FILING VALUES block of the text header.
func (b *Builder) FilingValues(doc string) *edgar.FilingValues {
	formType, _ := edgar.ExtractField(formTypeRe, doc)
	return &edgar.FilingValues{
		FormType:      formType,
		SecAct:        optional(secActRe, doc),
		SecFileNumber: optional(secFileNumberRe, doc),
		FilmNumber:    optional(filmNumberRe, doc),
	}
}

// CompanyData reads the COMPANY DATA block of the text header.
func (b *Builder) CompanyData(doc string) *edgar.CompanyData {
	return &edgar.CompanyData{
		CompanyConformedName: field(companyConformedNameRe, doc),
		CentralIndexKey:      field(centralIndexKeyRe, doc),
		IRSNumber:            field(irsNumberRe, doc),
		StateOfIncorporation: field(stateOfIncorporationRe, doc),
		FiscalYearEnd:        field(fiscalYearEndRe, doc),
	}
}

// OfferingSalesAmounts reads the offeringSalesAmounts section of a Form D.
// The three totals are required integers: a missing or non-numeric total
// returns EINVALID, and a malformed section returns EMALFORMED.
func (b *Builder) OfferingSalesAmounts(doc string) (*edgar.OfferingSalesAmounts, error) {
	submission, _ := b.Isolator.Isolate(doc, tagEdgarSubmission)
	section, ok := b.Isolator.Isolate(submission, tagOfferingSalesAmounts)

	r := &fragment{reader: b.Reader, xml: section, present: ok}
	amounts := &edgar.OfferingSalesAmounts{
		TotalOfferingAmount:     r.integer(tagTotalOfferingAmount),
		TotalAmountSold:         r.integer(tagTotalAmountSold),
		TotalRemaining:          r.integer(tagTotalRemaining),
		ClarificationOfResponse: r.text(tagClarificationOfResponse),
	}
	if r.err != nil {
		return nil, r.err
	}
	return amounts, nil
}

// IndustryGroup reads the industry classification of a Form D issuer.
// InvestmentFundInfo is left nil when the filing has neither an
// investmentFundType nor an is40Act element.
func (b *Builder) IndustryGroup(doc string) (*edgar.IndustryGroup, error) {
	submission, ok := b.Isolator.Isolate(doc, tagEdgarSubmission)

	r := &fragment{reader: b.Reader, xml: submission, present: ok}
	group := &edgar.IndustryGroup{
		IndustryGroupType: r.text(tagIndustryGroupType),
	}
	fundType, hasFundType := r.lookup(tagInvestmentFundType)
	is40Act, hasIs40Act := r.lookup(tagIs40Act)
	if r.err != nil {
		return nil, r.err
	}

	if hasFundType || hasIs40Act {
		group.InvestmentFundInfo = &edgar.InvestmentFundInfo{
			InvestmentFundType: fundType,
			Is40Act:            is40Act != "",
		}
	}
	return group, nil
}

// FormD builds all four Form D records from one document.
func (b *Builder) FormD(doc string) (*edgar.FormD, error) {
	industry, err := b.IndustryGroup(doc)
	if err != nil {
		return nil, fmt.Errorf("industry group: %w", err)
	}
	amounts, err := b.OfferingSalesAmounts(doc)
	if err != nil {
		return nil, fmt.Errorf("offering sales amounts: %w", err)
	}
	return &edgar.FormD{
		CompanyData:          *b.CompanyData(doc),
		FilingValues:         *b.FilingValues(doc),
		IndustryGroup:        *industry,
		OfferingSalesAmounts: *amounts,
	}, nil
}

// Ownership maps the transaction tables of a Form 3, 4 or 5. When the
// document has an ownershipDocument element its children are mapped;
// otherwise each transaction table found is mapped under its own name.
// Returns EINVALID when the document has none of these elements.
func (b *Builder) Ownership(doc string) (edgar.Map, error) {
	if xml, ok := b.Isolator.IsolateRaw(doc, tagOwnershipDocument); ok {
		return b.Reader.Tree(xml)
	}

	out := make(edgar.Map)
	for _, tag := range []string{tagNonDerivativeTable, tagDerivativeTable} {
		xml, ok := b.Isolator.IsolateRaw(doc, tag)
		if !ok {
			continue
		}
		table, err := b.Reader.Tree(xml)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
		out[tag] = table
	}
	if len(out) == 0 {
		return nil, edgar.Errorf(edgar.EINVALID, "no ownership tables found")
	}
	return out, nil
}

func field(re *regexp.Regexp, doc string) string {
	v, _ := edgar.ExtractField(re, doc)
	return v
}

func optional(re *regexp.Regexp, doc string) *string {
	v, ok := edgar.ExtractField(re, doc)
	if !ok {
		return nil
	}
	return &v
}

// fragment reads several tags from one isolated XML section and keeps the
// first error, so builders can populate a record field by field.
type fragment struct {
	reader  edgar.TagReader
	xml     string
	present bool
	err     error
}

// lookup returns the tag's text. A section that was never isolated reads as
// empty rather than being handed to the strict parser.
func (f *fragment) lookup(tag string) (string, bool) {
	if f.err != nil || !f.present {
		return "", false
	}
	v, ok, err := f.reader.TagText(f.xml, tag)
	if err != nil {
		f.err = err
		return "", false
	}
	return v, ok
}

func (f *fragment) text(tag string) string {
	v, _ := f.lookup(tag)
	return v
}

func (f *fragment) integer(tag string) int64 {
	v, ok := f.lookup(tag)
	if f.err != nil {
		return 0
	}
	if !ok {
		f.err = edgar.Errorf(edgar.EINVALID, "%s: value required", tag)
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		f.err = edgar.Errorf(edgar.EINVALID, "%s: %q is not an integer", tag, v)
		return 0
	}
	return n
}
