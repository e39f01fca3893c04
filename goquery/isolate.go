// Package goquery isolates XML islands from EDGAR submission text using the
// lenient HTML5 parser behind github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/edgar"
	"golang.org/x/net/html"
)

var _ edgar.Isolator = (*Isolator)(nil)

// Isolator implements edgar.Isolator. It holds no state and is safe for
// concurrent use.
type Isolator struct{}

// NewIsolator creates a new Isolator.
func NewIsolator() *Isolator {
	return &Isolator{}
}

// Isolate parses text as HTML, which never fails on stray header lines or
// unclosed tags, and returns the outer HTML of the first element whose local
// name matches tag. The HTML parser lowercases element names, so the result
// is only suitable for case-insensitive lookups.
func (i *Isolator) Isolate(text, tag string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", false
	}

	sel := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		n := s.Get(0)
		return n.Type == html.ElementNode && matchTag(n.Data, tag)
	}).First()
	if sel.Length() == 0 {
		return "", false
	}

	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", false
	}
	return out, true
}

// matchTag reports whether name, with any namespace prefix removed,
// equals tag ignoring case.
func matchTag(name, tag string) bool {
	return strings.EqualFold(localName(name), localName(tag))
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}
