package mock

import "github.com/fwojciec/edgar"

var _ edgar.TagReader = (*TagReader)(nil)

// TagReader is a mock implementation of edgar.TagReader.
type TagReader struct {
	TagTextFn func(xml, tag string) (string, bool, error)
	TreeFn    func(xml string) (edgar.Map, error)
}

func (r *TagReader) TagText(xml, tag string) (string, bool, error) {
	return r.TagTextFn(xml, tag)
}

func (r *TagReader) Tree(xml string) (edgar.Map, error) {
	return r.TreeFn(xml)
}
