package common

import "regexp"

var leadingNumberRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// LeadingNumber returns the longest decimal number at the start of text,
// e.g. "1.5kg" yields "1.5". The second result is false when text does not
// start with a number.
func LeadingNumber(text string) (string, bool) {
	m := leadingNumberRe.FindString(text)
	return m, m != ""
}
