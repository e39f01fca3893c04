package edgar

// Isolator locates element subtrees inside text that is not well-formed XML
// as a whole, such as a submission with a plain-text header around an XML
// payload. Tag matching ignores case and namespace prefixes; the first
// matching element in document order wins. A miss returns false.
type Isolator interface {
	// Isolate returns the matching element's subtree, re-serialized.
	Isolate(text, tag string) (string, bool)

	// IsolateRaw returns the matching element's original source text,
	// preserving tag case.
	IsolateRaw(text, tag string) (string, bool)
}

// TagReader reads elements out of a well-formed XML fragment.
// Both methods return EMALFORMED when the fragment does not parse.
type TagReader interface {
	// TagText returns the direct text of the first descendant whose local
	// name matches tag case-insensitively. A missing element or an element
	// without text returns false.
	TagText(xml, tag string) (string, bool, error)

	// Tree maps the root element's children into an ownership tree.
	Tree(xml string) (Map, error)
}
