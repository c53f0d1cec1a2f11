package format

// Translation is one language's name and description for a spell.
type Translation struct {
	Name        string
	Description string
}

// SpellTranslations is an ordered, immutable mapping from language display
// name to Translation. Updates return a new value; the zero value is empty.
type SpellTranslations struct {
	order   []string
	entries map[string]Translation
}

// NewSpellTranslations builds a mapping from languages in the given order.
func NewSpellTranslations(langs []string, entries map[string]Translation) SpellTranslations {
	t := SpellTranslations{}
	for _, l := range langs {
		if tr, ok := entries[l]; ok {
			t = t.With(l, tr)
		}
	}
	return t
}

// EnglishOnly builds a mapping holding just the English entry.
func EnglishOnly(name, description string) SpellTranslations {
	return SpellTranslations{}.With(LanguageEnglish, Translation{Name: name, Description: description})
}

// With returns a copy where lang maps to tr. A new language is appended to the order.
func (t SpellTranslations) With(lang string, tr Translation) SpellTranslations {
	out := SpellTranslations{
		order:   make([]string, len(t.order), len(t.order)+1),
		entries: make(map[string]Translation, len(t.entries)+1),
	}
	copy(out.order, t.order)
	for k, v := range t.entries {
		out.entries[k] = v
	}
	if _, exists := out.entries[lang]; !exists {
		out.order = append(out.order, lang)
	}
	out.entries[lang] = tr
	return out
}

// Without returns a copy with lang removed.
func (t SpellTranslations) Without(lang string) SpellTranslations {
	out := SpellTranslations{}
	for _, l := range t.order {
		if l != lang {
			out = out.With(l, t.entries[l])
		}
	}
	return out
}

// Get returns the entry for lang.
func (t SpellTranslations) Get(lang string) (Translation, bool) {
	tr, ok := t.entries[lang]
	return tr, ok
}

// English returns the English entry.
func (t SpellTranslations) English() (Translation, bool) {
	return t.Get(LanguageEnglish)
}

// Languages returns the languages in insertion order.
func (t SpellTranslations) Languages() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len is the number of languages present.
func (t SpellTranslations) Len() int { return len(t.order) }

// Each calls fn for every entry in order.
func (t SpellTranslations) Each(fn func(lang string, tr Translation)) {
	for _, l := range t.order {
		fn(l, t.entries[l])
	}
}
