package filing

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/edgar"
)

var _ edgar.Parser = (*Parser)(nil)

var (
	metaTypeRe       = regexp.MustCompile(`<TYPE>[ \t]*([^\s<]+)`)
	metaSequenceRe   = regexp.MustCompile(`<SEQUENCE>[ \t]*([^\s<]+)`)
	metaFilenameRe   = regexp.MustCompile(`<FILENAME>[ \t]*([^\s<]+)`)
	submissionTypeRe = regexp.MustCompile(`CONFORMED SUBMISSION TYPE:\s+(.*)`)
)

// Parser implements edgar.Parser by dispatching to a Builder.
type Parser struct {
	Builder *Builder
}

// NewParser creates a new Parser.
func NewParser(builder *Builder) *Parser {
	return &Parser{Builder: builder}
}

// ParseMetadata reads the <TYPE>, <SEQUENCE> and <FILENAME> lines that
// precede a document in a submission. Missing lines leave fields empty.
func (p *Parser) ParseMetadata(doc string) edgar.DocumentMetadata {
	return edgar.DocumentMetadata{
		Type:     field(metaTypeRe, doc),
		Sequence: field(metaSequenceRe, doc),
		Filename: field(metaFilenameRe, doc),
	}
}

// Parse builds a Filing for a Form D or an ownership form (3, 4, 5 and
// their amendments).
func (p *Parser) Parse(doc string) (*edgar.Filing, error) {
	meta := p.ParseMetadata(doc)
	formType := p.FormType(doc, meta)

	filing := &edgar.Filing{Metadata: meta, FormType: formType}
	switch {
	case isFormD(formType):
		formD, err := p.Builder.FormD(doc)
		if err != nil {
			return nil, fmt.Errorf("form %s: %w", formType, err)
		}
		filing.FormD = formD
	case isOwnershipForm(formType):
		tree, err := p.Builder.Ownership(doc)
		if err != nil {
			return nil, fmt.Errorf("form %s: %w", formType, err)
		}
		filing.Ownership = tree
	case formType == "":
		return nil, edgar.Errorf(edgar.EINVALID, "cannot determine form type")
	default:
		return nil, edgar.Errorf(edgar.EINVALID, "unsupported form type %q", formType)
	}
	return filing, nil
}

// ParseFile rejects name unless it has an accepted extension, then reads
// and parses r.
func (p *Parser) ParseFile(name string, r io.Reader) (*edgar.Filing, error) {
	if err := edgar.ValidateFilename(name); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return p.Parse(string(b))
}

// FormType returns the normalized form type of doc. The declared type is
// taken from the document metadata, then the submission header, then the
// FORM TYPE line. Without a declaration the type is inferred from the XML
// payload. Returns "" when nothing matches.
func (p *Parser) FormType(doc string, meta edgar.DocumentMetadata) string {
	if meta.Type != "" {
		return normalizeFormType(meta.Type)
	}
	if v, ok := edgar.ExtractField(submissionTypeRe, doc); ok {
		return normalizeFormType(v)
	}
	if v, ok := edgar.ExtractField(formTypeRe, doc); ok {
		return normalizeFormType(v)
	}

	if _, ok := p.Builder.Isolator.IsolateRaw(doc, tagEdgarSubmission); ok {
		return "D"
	}
	for _, tag := range []string{tagOwnershipDocument, tagNonDerivativeTable, tagDerivativeTable} {
		if _, ok := p.Builder.Isolator.IsolateRaw(doc, tag); ok {
			return "4"
		}
	}
	return ""
}

func normalizeFormType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func isFormD(formType string) bool {
	return formType == "D" || formType == "D/A"
}

func isOwnershipForm(formType string) bool {
	switch strings.TrimSuffix(formType, "/A") {
	case "3", "4", "5":
		return true
	}
	return false
}
