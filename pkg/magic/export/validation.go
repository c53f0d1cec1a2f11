package export

import (
	"fmt"
	"sort"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/format"
	"github.com/provide-io/ff8magic/pkg/magic/textcodec"
)

// Issue is one validation finding.
type Issue struct {
	SpellIndex int
	Language   string
	Err        error // sentinel from pkg/magic/errors, nil for warnings
	Message    string
}

func (i Issue) String() string {
	if i.Language != "" {
		return fmt.Sprintf("spell %d [%s]: %s", i.SpellIndex, i.Language, i.Message)
	}
	return fmt.Sprintf("spell %d: %s", i.SpellIndex, i.Message)
}

// ValidationResult accumulates every error and warning of a batch.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// IsValid reports whether export may proceed.
func (r ValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// ErrorStrings renders the errors for reports and events.
func (r ValidationResult) ErrorStrings() []string { return issueStrings(r.Errors) }

// WarningStrings renders the warnings for reports and events.
func (r ValidationResult) WarningStrings() []string { return issueStrings(r.Warnings) }

func issueStrings(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.String()
	}
	return out
}

func (r *ValidationResult) addError(index int, lang string, err error, msg string, args ...any) {
	r.Errors = append(r.Errors, Issue{SpellIndex: index, Language: lang, Err: err, Message: fmt.Sprintf(msg, args...)})
}

func (r *ValidationResult) addWarning(index int, lang string, msg string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{SpellIndex: index, Language: lang, Message: fmt.Sprintf(msg, args...)})
}

// sortedIndices returns the keys of spells in ascending order.
func sortedIndices(spells map[int]format.SpellTranslations) []int {
	indices := make([]int, 0, len(spells))
	for idx := range spells {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// NormalizeLanguages rewrites every translation key to the language table's
// display name ("french" and "fr" become "French"). When a spell has two
// keys for the same language the first one wins. Unknown languages are kept
// as they are; Validate rejects them.
func NormalizeLanguages(spells map[int]format.SpellTranslations) map[int]format.SpellTranslations {
	out := make(map[int]format.SpellTranslations, len(spells))
	for idx, tr := range spells {
		var norm format.SpellTranslations
		tr.Each(func(lang string, t format.Translation) {
			if name, ok := format.Languages.Canonical(lang); ok {
				lang = name
			}
			if _, dup := norm.Get(lang); !dup {
				norm = norm.With(lang, t)
			}
		})
		out[idx] = norm
	}
	return out
}

// RequiredLanguages is the union of the languages used by any spell, always
// including English, in resource-file order. Keys are expected to be
// normalized.
func RequiredLanguages(spells map[int]format.SpellTranslations) []string {
	langs := []string{format.LanguageEnglish}
	for _, idx := range sortedIndices(spells) {
		langs = append(langs, spells[idx].Languages()...)
	}
	return format.Languages.SortLanguages(langs)
}

// Validate checks a batch of spell translations before anything is written.
// Problems are collected for the whole batch; nothing short-circuits.
// Languages outside the language table are errors, since their resource
// files have no name the game loads.
func Validate(spells map[int]format.SpellTranslations) ValidationResult {
	var result ValidationResult

	for _, idx := range sortedIndices(spells) {
		seen := make(map[string]string)
		for _, lang := range spells[idx].Languages() {
			name, ok := format.Languages.Canonical(lang)
			if !ok {
				result.addError(idx, lang, magicerrors.ErrUnknownLanguage, "unknown language %q", lang)
				continue
			}
			if first, dup := seen[name]; dup {
				result.addWarning(idx, lang, "duplicate %s translation, keeping %q", name, first)
				continue
			}
			seen[name] = lang
		}
	}

	normalized := NormalizeLanguages(spells)
	required := RequiredLanguages(normalized)

	for _, idx := range sortedIndices(normalized) {
		tr := normalized[idx]

		en, ok := tr.English()
		switch {
		case !ok:
			result.addError(idx, format.LanguageEnglish, magicerrors.ErrMissingEnglishTranslation, "English translation is required")
		case en.Name == "":
			result.addError(idx, format.LanguageEnglish, magicerrors.ErrMissingEnglishTranslation, "English name is empty")
		}

		tr.Each(func(lang string, t format.Translation) {
			checkEncodable(&result, idx, lang, "name", t.Name)
			checkEncodable(&result, idx, lang, "description", t.Description)
		})

		for _, lang := range required {
			if lang == format.LanguageEnglish {
				continue
			}
			if _, known := format.Languages.ByName(lang); !known {
				continue
			}
			if _, ok := tr.Get(lang); !ok {
				result.addWarning(idx, lang, "missing translation, English text will be used")
			}
		}
	}

	return result
}

// remap rewrites spell indices through orig, so that issues found on a
// renumbered batch name the spells by their original index.
func (r ValidationResult) remap(orig []int) ValidationResult {
	fix := func(issues []Issue) []Issue {
		out := make([]Issue, len(issues))
		for i, is := range issues {
			if is.SpellIndex >= 0 && is.SpellIndex < len(orig) {
				is.SpellIndex = orig[is.SpellIndex]
			}
			out[i] = is
		}
		return out
	}
	return ValidationResult{Errors: fix(r.Errors), Warnings: fix(r.Warnings)}
}

func checkEncodable(result *ValidationResult, idx int, lang, field, text string) {
	if r, pos := textcodec.FirstUnencodable(text); pos >= 0 {
		result.addError(idx, lang, magicerrors.ErrEncodingIncompatible,
			"%s contains unsupported character %q at position %d", field, r, pos)
	}
}

// ValidateSpells runs Validate over spells keyed by Index and adds range
// warnings for values the game accepts but rarely handles well.
func ValidateSpells(spells []format.MagicData) ValidationResult {
	texts := make(map[int]format.SpellTranslations, len(spells))
	for _, m := range spells {
		texts[m.Index] = m.Translations
	}
	result := Validate(texts)

	for _, m := range spells {
		if m.HitCount > format.MaxPracticalHits {
			result.addWarning(m.Index, "", "hit count %d exceeds the practical maximum of %d", m.HitCount, format.MaxPracticalHits)
		}
		if m.MagicID > format.MaxMagicID {
			result.addWarning(m.Index, "", "magic id %d is outside 0-%d", m.MagicID, format.MaxMagicID)
		}
	}
	return result
}

// ApplyEnglishFallback returns a copy of spells where every spell has an
// entry for every language in required. Missing entries copy the spell's
// English text verbatim.
func ApplyEnglishFallback(spells map[int]format.SpellTranslations, required []string) map[int]format.SpellTranslations {
	out := make(map[int]format.SpellTranslations, len(spells))
	for idx, tr := range spells {
		en, _ := tr.English()
		for _, lang := range required {
			if _, ok := tr.Get(lang); !ok {
				tr = tr.With(lang, en)
			}
		}
		out[idx] = tr
	}
	return out
}
