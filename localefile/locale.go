package localefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Azhovan/scanfmt"
	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures locale file loading.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (classic locale).
	Required bool
}

// document is the on-disk locale schema. Unset fields keep the classic
// locale's value.
type document struct {
	DecimalPoint string `yaml:"decimal_point" json:"decimal_point" toml:"decimal_point"`
	ThousandsSep string `yaml:"thousands_sep" json:"thousands_sep" toml:"thousands_sep"`
	Grouping     []int  `yaml:"grouping" json:"grouping" toml:"grouping"`
	TrueName     string `yaml:"true_name" json:"true_name" toml:"true_name"`
	FalseName    string `yaml:"false_name" json:"false_name" toml:"false_name"`
}

// Load reads a locale description from path.
func Load(path string, opts Options) (scanfmt.Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.Required {
				return scanfmt.Locale{}, fmt.Errorf("required locale file not found: %s: %w", path, err)
			}
			return scanfmt.ClassicLocale(), nil
		}
		return scanfmt.Locale{}, fmt.Errorf("read locale file %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format = inferFormat(path)
	}
	loc, err := Parse(data, format)
	if err != nil {
		return scanfmt.Locale{}, fmt.Errorf("locale file %s: %w", path, err)
	}
	return loc, nil
}

// Parse decodes a locale description in the given format.
func Parse(data []byte, format string) (scanfmt.Locale, error) {
	var doc document
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return scanfmt.Locale{}, fmt.Errorf("parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return scanfmt.Locale{}, fmt.Errorf("parse JSON: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return scanfmt.Locale{}, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return scanfmt.Locale{}, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}
	return doc.locale()
}

func (d *document) locale() (scanfmt.Locale, error) {
	loc := scanfmt.ClassicLocale()

	if d.DecimalPoint != "" {
		r, err := singleRune("decimal_point", d.DecimalPoint)
		if err != nil {
			return loc, err
		}
		loc.DecimalPoint = r
	}
	if d.ThousandsSep != "" {
		r, err := singleRune("thousands_sep", d.ThousandsSep)
		if err != nil {
			return loc, err
		}
		loc.ThousandsSep = r
	}
	if loc.DecimalPoint == loc.ThousandsSep {
		return loc, fmt.Errorf("decimal_point and thousands_sep are both %q", loc.DecimalPoint)
	}

	if d.Grouping != nil {
		for _, g := range d.Grouping {
			if g < 0 {
				return loc, fmt.Errorf("grouping: negative group size %d", g)
			}
		}
		loc.Grouping = d.Grouping
	}
	if d.TrueName != "" {
		loc.TrueName = d.TrueName
	}
	if d.FalseName != "" {
		loc.FalseName = d.FalseName
	}
	if loc.TrueName == loc.FalseName {
		return loc, fmt.Errorf("true_name and false_name are both %q", loc.TrueName)
	}
	return loc, nil
}

func singleRune(key, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%s: %q is not a single character", key, s)
	}
	if r >= '0' && r <= '9' {
		return 0, fmt.Errorf("%s: digits cannot be separators", key)
	}
	return r, nil
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
