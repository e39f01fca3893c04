package edgar

import "regexp"

// ExtractField returns the first capture group of the first match of re
// anywhere in text. The second return value is false when re does not match,
// which callers treat as an absent optional field rather than an error.
//
// The captured value is returned as-is; any trimming is the pattern's job.
func ExtractField(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
