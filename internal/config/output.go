package config

import "git.home.luguber.info/inful/mdinline/internal/foundation/normalization"

// OutputFormat selects how rendered runs are printed.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

var outputFormatNormalizer = normalization.NewNormalizer(map[string]OutputFormat{
	"text": OutputFormatText,
	"json": OutputFormatJSON,
	"yaml": OutputFormatYAML,
	"yml":  OutputFormatYAML,
}, OutputFormatText)

// ParseOutputFormat validates a user supplied format. Empty means text.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	return outputFormatNormalizer.Parse(raw)
}
