package main

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultSuffix is used when neither --ext nor --lang select anything.
const defaultSuffix = ".js"

// SuffixSet is the ordered list of lowercase filename suffixes to collect.
// It is also the source of the header's title and file type line.
type SuffixSet []string

// ParseSuffixes normalizes suffixes: comma-separated entries are split,
// trimmed, lowercased and given a leading dot. Duplicates keep their first position.
func ParseSuffixes(items ...string) (SuffixSet, error) {
	var set SuffixSet
	seen := make(map[string]bool)
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			s := strings.ToLower(strings.TrimSpace(part))
			if s == "" || s == "." {
				continue
			}
			if !strings.HasPrefix(s, ".") {
				s = "." + s
			}
			if seen[s] {
				continue
			}
			seen[s] = true
			set = append(set, s)
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no file suffixes given")
	}
	return set, nil
}

// Match reports whether name, lowercased, ends with one of the suffixes.
func (s SuffixSet) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range s {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func (s SuffixSet) String() string {
	return strings.Join(s, ", ")
}

// Title renders the document title, e.g. "PY & JS Files Summary".
func (s SuffixSet) Title() string {
	names := make([]string, len(s))
	for i, suffix := range s {
		names[i] = strings.ToUpper(strings.TrimPrefix(suffix, "."))
	}
	return strings.Join(names, " & ") + " Files Summary"
}

//go:embed languages.yml
var languagesYAML []byte

// LanguageInfo holds the suffixes that make up one language preset.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
}

// LanguageMap maps language names (e.g., "JavaScript") to their details.
type LanguageMap map[string]LanguageInfo

// loadLanguages parses the embedded language presets.
func loadLanguages() (LanguageMap, error) {
	var langs LanguageMap
	if err := yaml.Unmarshal(languagesYAML, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language presets: %w", err)
	}
	return langs, nil
}

// Extensions resolves language names case-insensitively to their suffixes,
// in the order the names were given.
func (lm LanguageMap) Extensions(names ...string) ([]string, error) {
	index := make(map[string]string, len(lm))
	for name := range lm {
		index[strings.ToLower(name)] = name
	}

	var exts []string
	for _, raw := range names {
		for _, part := range strings.Split(raw, ",") {
			key := strings.ToLower(strings.TrimSpace(part))
			if key == "" {
				continue
			}
			name, ok := index[key]
			if !ok {
				return nil, fmt.Errorf("unknown language %q (known: %s)", strings.TrimSpace(part), strings.Join(lm.Names(), ", "))
			}
			exts = append(exts, lm[name].Extensions...)
		}
	}
	return exts, nil
}

// Names returns the preset names in sorted order.
func (lm LanguageMap) Names() []string {
	names := make([]string, 0, len(lm))
	for name := range lm {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveSuffixes combines --ext and --lang into the run's suffix set.
func resolveSuffixes(exts, langs []string) (SuffixSet, error) {
	items := append([]string{}, exts...)
	if len(nonEmpty(langs)) > 0 {
		lm, err := loadLanguages()
		if err != nil {
			return nil, err
		}
		langExts, err := lm.Extensions(langs...)
		if err != nil {
			return nil, err
		}
		items = append(items, langExts...)
	}
	if len(nonEmpty(items)) == 0 {
		items = []string{defaultSuffix}
	}
	return ParseSuffixes(items...)
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.Trim(item, ", \t") != "" {
			out = append(out, item)
		}
	}
	return out
}
