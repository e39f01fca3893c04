// Package etree reads fields out of well-formed XML fragments using
// github.com/beevik/etree.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/edgar"
)

var _ edgar.TagReader = (*Reader)(nil)

// Reader implements edgar.TagReader with a strict XML parser. Input must be a
// well-formed fragment; use an edgar.Isolator to cut one out of a submission
// first. Reader holds no state and is safe for concurrent use.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// TagText returns the direct text of the first element below the root, in
// document order, whose local name matches tag ignoring case.
func (r *Reader) TagText(xml, tag string) (string, bool, error) {
	root, err := parse(xml)
	if err != nil {
		return "", false, err
	}

	el := findFirst(root, localName(tag))
	if el == nil {
		return "", false, nil
	}
	text := el.Text()
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// Tree maps the children of the root element. See childMap for the rules.
func (r *Reader) Tree(xml string) (edgar.Map, error) {
	root, err := parse(xml)
	if err != nil {
		return nil, err
	}
	return childMap(root), nil
}

func parse(xml string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, edgar.Errorf(edgar.EMALFORMED, "parsing XML fragment: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, edgar.Errorf(edgar.EMALFORMED, "XML fragment has no root element")
	}
	return root, nil
}

// findFirst walks the descendants of el depth-first in document order.
// etree keeps the namespace prefix in Space, so Tag is already local.
func findFirst(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if strings.EqualFold(child.Tag, tag) {
			return child
		}
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// childMap keys the children of el by local name. A name that occurs more
// than once among the siblings maps to a List in document order.
func childMap(el *etree.Element) edgar.Map {
	children := el.ChildElements()

	counts := make(map[string]int, len(children))
	for _, c := range children {
		counts[c.Tag]++
	}

	m := make(edgar.Map, len(counts))
	for _, c := range children {
		v := elementValue(c)
		if counts[c.Tag] > 1 {
			list, _ := m[c.Tag].(edgar.List)
			m[c.Tag] = append(list, v)
			continue
		}
		m[c.Tag] = v
	}
	return m
}

// elementValue maps a leaf to its trimmed text. Ownership documents wrap
// scalars as <x><value>v</value><footnoteId/></x>; those collapse to the
// value text and the footnote references are dropped.
func elementValue(el *etree.Element) edgar.Value {
	children := el.ChildElements()
	if len(children) == 0 {
		return edgar.Text(strings.TrimSpace(el.Text()))
	}
	for _, c := range children {
		if strings.EqualFold(c.Tag, "value") {
			return elementValue(c)
		}
	}
	return childMap(el)
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}
