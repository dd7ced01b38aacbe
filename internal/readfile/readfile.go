// Package readfile loads buffer text from disk with CRLF line endings
// folded to LF.
package readfile

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Text returns the contents of path with "\r\n" replaced by "\n". Lone
// carriage returns are kept. Invalid UTF-8 is an error since buffers are
// addressed in characters.
func Text(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: not valid UTF-8", path)
	}
	return Normalize(string(data)), nil
}

// Normalize folds CRLF line endings to LF.
func Normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Lines is Text split on "\n". A trailing newline yields a final empty line.
func Lines(path string) ([]string, error) {
	text, err := Text(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(text, "\n"), nil
}
