package edgar

import (
	"io"
	"path/filepath"
	"strings"
)

// FilingValues holds the FILING VALUES block of a filing's text header.
// Optional fields are nil when the header has no matching line.
type FilingValues struct {
	FormType      string  `json:"formType"`
	SecAct        *string `json:"secAct"`
	SecFileNumber *string `json:"secFileNumber"`
	FilmNumber    *string `json:"filmNumber"`
}

// CompanyData holds the COMPANY DATA block of a filing's text header.
// IRSNumber and FiscalYearEnd are numeric in the source but kept as the
// extracted text. Fields are empty when the header has no matching line.
type CompanyData struct {
	CompanyConformedName string `json:"companyConformedName"`
	CentralIndexKey      string `json:"centralIndexKey"`
	IRSNumber            string `json:"irsNumber"`
	StateOfIncorporation string `json:"stateOfIncorporation"`
	FiscalYearEnd        string `json:"fiscalYearEnd"`
}

// DocumentMetadata is the small block that precedes each document in a
// full submission file.
type DocumentMetadata struct {
	Type     string `json:"type"`
	Sequence string `json:"sequence"`
	Filename string `json:"filename"`
}

// Filing is the result of parsing one filing document.
// Exactly one of FormD or Ownership is set, depending on FormType.
type Filing struct {
	Metadata  DocumentMetadata `json:"metadata"`
	FormType  string           `json:"formType"`
	FormD     *FormD           `json:"formD,omitempty"`
	Ownership Map              `json:"ownership,omitempty"`
}

// Parser turns raw filing text into a typed Filing.
type Parser interface {
	// Parse dispatches on the declared or inferred form type and returns
	// the populated filing. Returns EINVALID for unsupported form types.
	Parse(doc string) (*Filing, error)

	// ParseFile validates name against the accepted extensions before
	// reading r. Returns EINVALID for rejected names without reading r.
	ParseFile(name string, r io.Reader) (*Filing, error)
}

// AcceptedExtensions lists the file extensions a parser accepts.
var AcceptedExtensions = []string{".txt", ".nc"}

// ValidateFilename returns EINVALID unless name ends in one of
// AcceptedExtensions. Compressed and binary formats are always rejected.
func ValidateFilename(name string) error {
	if name == "" {
		return Errorf(EINVALID, "filename required")
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return nil
		}
	}
	return Errorf(EINVALID, "unsupported file extension %q for %s: expected one of %s",
		ext, filepath.Base(name), strings.Join(AcceptedExtensions, ", "))
}
