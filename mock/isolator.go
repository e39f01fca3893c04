package mock

import "github.com/fwojciec/edgar"

var _ edgar.Isolator = (*Isolator)(nil)

// Isolator is a mock implementation of edgar.Isolator.
type Isolator struct {
	IsolateFn    func(text, tag string) (string, bool)
	IsolateRawFn func(text, tag string) (string, bool)
}

func (i *Isolator) Isolate(text, tag string) (string, bool) {
	return i.IsolateFn(text, tag)
}

func (i *Isolator) IsolateRaw(text, tag string) (string, bool) {
	return i.IsolateRawFn(text, tag)
}
