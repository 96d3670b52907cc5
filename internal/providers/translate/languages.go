package translate

import (
	_ "embed"

	"github.com/goccy/go-yaml"
)

// Language is one entry of the supported-language catalog offered to the
// translate UI.
type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

//go:embed languages.yaml
var languagesYAML []byte

var catalog []Language

func init() {
	var parsed struct {
		Languages []Language `yaml:"languages"`
	}
	if err := yaml.Unmarshal(languagesYAML, &parsed); err != nil {
		panic("translate: malformed embedded language catalog: " + err.Error())
	}
	catalog = parsed.Languages
}

// Languages returns the supported target languages.
func Languages() []Language {
	out := make([]Language, len(catalog))
	copy(out, catalog)
	return out
}

// IsSupported reports whether code appears in the catalog.
func IsSupported(code string) bool {
	for _, lang := range catalog {
		if lang.Code == code {
			return true
		}
	}
	return false
}
