package mock

import (
	"io"

	"github.com/fwojciec/edgar"
)

var _ edgar.Parser = (*Parser)(nil)

// Parser is a mock implementation of edgar.Parser.
type Parser struct {
	ParseFn     func(doc string) (*edgar.Filing, error)
	ParseFileFn func(name string, r io.Reader) (*edgar.Filing, error)
}

func (p *Parser) Parse(doc string) (*edgar.Filing, error) {
	return p.ParseFn(doc)
}

func (p *Parser) ParseFile(name string, r io.Reader) (*edgar.Filing, error) {
	return p.ParseFileFn(name, r)
}
