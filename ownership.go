package edgar

// Value is a node of an ownership tree: Text, List or Map.
type Value interface {
	isValue()
}

// Text is the text content of a leaf element.
type Text string

// List holds same-named sibling elements in document order.
type List []Value

// Map holds child elements keyed by local tag name.
type Map map[string]Value

func (Text) isValue() {}
func (List) isValue() {}
func (Map) isValue()  {}

// Lookup follows path through nested maps. List entries are addressed by
// their decimal index, e.g. Lookup("nonDerivativeTransaction", "1").
func (m Map) Lookup(path ...string) (Value, bool) {
	var cur Value = m
	for _, key := range path {
		switch v := cur.(type) {
		case Map:
			next, ok := v[key]
			if !ok {
				return nil, false
			}
			cur = next
		case List:
			i, ok := listIndex(key, len(v))
			if !ok {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Text returns the Text found at path, or false if path does not end at a leaf.
func (m Map) Text(path ...string) (string, bool) {
	v, ok := m.Lookup(path...)
	if !ok {
		return "", false
	}
	t, ok := v.(Text)
	return string(t), ok
}

func listIndex(key string, n int) (int, bool) {
	if key == "" {
		return 0, false
	}
	i := 0
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
		i = i*10 + int(c-'0')
		if i >= n {
			return 0, false
		}
	}
	return i, true
}
