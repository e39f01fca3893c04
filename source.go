package edgar

// Source is one filing document read from disk.
type Source struct {
	Path string
	Text string
}
