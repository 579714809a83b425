package document

import (
	"strings"

	"github.com/inful/mdfp"
)

// Fingerprint returns the content fingerprint of a document split into its
// raw front matter and body. Line endings are normalized first so a file
// re-saved with different newlines keeps its fingerprint.
func Fingerprint(front, body []byte) string {
	fm := strings.ReplaceAll(string(front), "\r\n", "\n")
	fm = strings.TrimSuffix(fm, "\n")
	return mdfp.CalculateFingerprintFromParts(fm, strings.ReplaceAll(string(body), "\r\n", "\n"))
}
