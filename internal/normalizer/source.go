package normalizer

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newSourceReader strips a UTF-8 byte order mark and decodes UTF-16 input
// that starts with one. Anything else passes through untouched.
func newSourceReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
