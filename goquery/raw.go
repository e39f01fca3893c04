package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// IsolateRaw returns the source text of the first element whose local name
// matches tag, from its start tag through its matching end tag. Unlike
// Isolate it does not re-serialize, so element names keep their case.
// Nested elements with the same name are balanced. An element that is never
// closed is treated as a miss.
func (i *Isolator) IsolateRaw(text, tag string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(text))

	var (
		offset int
		start  = -1
		depth  int
	)
	for {
		tt := z.Next()
		// TagName lowercases the token buffer in place, so take the length
		// now and slice the original text instead of keeping Raw.
		pos := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			return "", false
		case html.SelfClosingTagToken:
			if start < 0 && tokenMatches(z, tag) {
				return text[pos:offset], true
			}
		case html.StartTagToken:
			if !tokenMatches(z, tag) {
				continue
			}
			if start < 0 {
				start = pos
			}
			depth++
		case html.EndTagToken:
			if start < 0 || !tokenMatches(z, tag) {
				continue
			}
			depth--
			if depth == 0 {
				return text[start:offset], true
			}
		}
	}
}

func tokenMatches(z *html.Tokenizer, tag string) bool {
	name, _ := z.TagName()
	return matchTag(string(name), tag)
}
