package format

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageEnglish is the display name of the mandatory language.
const LanguageEnglish = "English"

// Language describes one text language and its resource-file suffixes.
type Language struct {
	Name     string // display name used as translation key, e.g. "French"
	Code     string // short file suffix, e.g. "fr"
	LongCode string // long file suffix, e.g. "french"
	Tag      language.Tag
}

// LanguageTable is an immutable lookup table of known languages.
type LanguageTable struct {
	languages []Language
	byName    map[string]int
	byCode    map[string]int
}

// Languages is the table of languages the game ships resource files for.
var Languages = newLanguageTable([]Language{
	{Code: "en", LongCode: "english", Tag: language.English},
	{Code: "fr", LongCode: "french", Tag: language.French},
	{Code: "de", LongCode: "german", Tag: language.German},
	{Code: "es", LongCode: "spanish", Tag: language.Spanish},
	{Code: "it", LongCode: "italian", Tag: language.Italian},
	{Code: "jp", LongCode: "japanese", Tag: language.Japanese},
})

func newLanguageTable(langs []Language) *LanguageTable {
	namer := display.English.Languages()
	t := &LanguageTable{
		byName: make(map[string]int, len(langs)),
		byCode: make(map[string]int, len(langs)*2),
	}
	for i, l := range langs {
		l.Name = namer.Name(l.Tag)
		t.languages = append(t.languages, l)
		t.byName[strings.ToLower(l.Name)] = i
		t.byCode[l.Code] = i
		t.byCode[l.LongCode] = i
	}
	return t
}

// All returns the known languages, English first.
func (t *LanguageTable) All() []Language {
	out := make([]Language, len(t.languages))
	copy(out, t.languages)
	return out
}

// ByName finds a language by display name, case-insensitively.
func (t *LanguageTable) ByName(name string) (Language, bool) {
	i, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return Language{}, false
	}
	return t.languages[i], true
}

// ByCode finds a language by file suffix ("fr", "french") or by any BCP 47
// tag sharing a known base language ("ja", "fr-CA").
func (t *LanguageTable) ByCode(code string) (Language, bool) {
	code = strings.ToLower(code)
	if i, ok := t.byCode[code]; ok {
		return t.languages[i], true
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, false
	}
	base, _ := tag.Base()
	for _, l := range t.languages {
		if lb, _ := l.Tag.Base(); lb == base {
			return l, true
		}
	}
	return Language{}, false
}

// Canonical maps a display name or file code to the table's display name
// ("french", "fr", "fr-CA" all give "French").
func (t *LanguageTable) Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if l, ok := t.ByName(name); ok {
		return l.Name, true
	}
	if l, ok := t.ByCode(name); ok {
		return l.Name, true
	}
	return "", false
}

// FileCode returns the resource-file suffix for a display name. Unknown
// languages are reduced to lower-case [a-z0-9_] so the suffix never
// carries path separators.
func (t *LanguageTable) FileCode(name string) string {
	if l, ok := t.ByName(name); ok {
		return l.Code
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// SortLanguages orders display names the way resource files are produced:
// English first, then known languages in table order, then unknown ones
// alphabetically. Duplicates, compared case-insensitively, are removed and
// the first spelling is kept.
func (t *LanguageTable) SortLanguages(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if !seen[key] {
			seen[key] = true
			out = append(out, n)
		}
	}
	rank := func(n string) int {
		if i, ok := t.byName[strings.ToLower(n)]; ok {
			return i
		}
		return len(t.languages)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}
