package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSetWords(t *testing.T) {
	s := StatusSet(0).Set(StatusSleep, true).Set(StatusSummonGF, true).Set(StatusDeath, true).Set(StatusUnknown47, true)

	assert.Equal(t, uint32(0x80000001), s.BattleWord())
	assert.Equal(t, uint16(0x8001), s.PersistentWord())
	assert.Equal(t, s, StatusSetFromWords(s.BattleWord(), s.PersistentWord()))

	s = s.Set(StatusDeath, false)
	assert.False(t, s.Has(StatusDeath))
	assert.Equal(t, s, s.Set(Status(60), true))
}

func TestFlagNamesRoundTrip(t *testing.T) {
	s := StatusSet(0).Set(StatusHaste, true).Set(StatusZombie, true)
	parsed, err := ParseStatusSet(s.Names())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
	assert.Equal(t, []string{"Haste", "Zombie"}, s.Names())

	tf := TargetSingle | TargetEnemy
	parsedTF, err := ParseTargetFlags(tf.Names())
	require.NoError(t, err)
	assert.Equal(t, tf, parsedTF)

	af := AttackFlagRevive | AttackFlagUnknown1
	parsedAF, err := ParseAttackFlags(af.Names())
	require.NoError(t, err)
	assert.Equal(t, af, parsedAF)

	js := JStatusSet(0).With(JStatusSleep).With(JStatusUnknown15)
	parsedJS, err := ParseJStatusSet(js.Names())
	require.NoError(t, err)
	assert.Equal(t, js, parsedJS)

	es := ElementSet(0).With(ElementFire).With(ElementHoly)
	parsedES, err := ParseElementSet([]string{"holy", "FIRE"})
	require.NoError(t, err)
	assert.Equal(t, es, parsedES)

	_, err = ParseStatusSet([]string{"Sneezing"})
	assert.Error(t, err)
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "Magic", AttackMagic.String())
	assert.Equal(t, "AttackType(200)", AttackType(200).String())

	at, err := ParseAttackType("AttackType(200)")
	require.NoError(t, err)
	assert.Equal(t, AttackType(200), at)
	at, err = ParseAttackType("curativemagic")
	require.NoError(t, err)
	assert.Equal(t, AttackCurativeMagic, at)

	assert.Equal(t, "Fire", ElementFire.String())
	assert.Equal(t, "None", ElementNone.String())
	assert.Equal(t, "0x03", Element(3).String())
	e, err := ParseElement("0x03")
	require.NoError(t, err)
	assert.Equal(t, Element(3), e)

	assert.Equal(t, StatusSleep, JStatusSleep.Status())
	assert.Equal(t, StatusDeath, JStatusDeath.Status())
	assert.True(t, JStatusSet(0).With(JStatusPoison).Statuses().Has(StatusPoison))

	g, err := ParseGF("doomtrain")
	require.NoError(t, err)
	assert.Equal(t, GFDoomtrain, g)
	assert.Len(t, AllGFs(), GFCount)
	assert.Equal(t, uint8(9), GFCompatibility{}.With(GFEden, 9).Get(GFEden))
}

func TestLanguageTable(t *testing.T) {
	en, ok := Languages.ByName("english")
	require.True(t, ok)
	assert.Equal(t, LanguageEnglish, en.Name)
	assert.Equal(t, "en", en.Code)

	jp, ok := Languages.ByCode("japanese")
	require.True(t, ok)
	assert.Equal(t, "Japanese", jp.Name)

	ja, ok := Languages.ByCode("ja")
	require.True(t, ok)
	assert.Equal(t, "jp", ja.Code)

	fr, ok := Languages.ByCode("fr-CA")
	require.True(t, ok)
	assert.Equal(t, "French", fr.Name)

	assert.Equal(t, "de", Languages.FileCode("German"))
	assert.Equal(t, "high_elvish", Languages.FileCode("High Elvish"))

	assert.Equal(t,
		[]string{"English", "French", "Japanese", "Elvish", "Klingon"},
		Languages.SortLanguages([]string{"Klingon", "Japanese", "English", "Elvish", "French", "English"}),
	)
	assert.Equal(t,
		[]string{"english", "French"},
		Languages.SortLanguages([]string{"French", "english", "french", "English"}),
	)
}

func TestLanguageCanonicalAndFileCode(t *testing.T) {
	for _, in := range []string{"French", "french", " FRENCH ", "fr", "french", "fr-CA"} {
		name, ok := Languages.Canonical(in)
		require.True(t, ok, in)
		assert.Equal(t, "French", name, in)
	}
	_, ok := Languages.Canonical("x/../../../escaped")
	assert.False(t, ok)
	_, ok = Languages.Canonical("")
	assert.False(t, ok)

	tests := map[string]string{
		"x/../../../escaped": "x__________escaped",
		`..\..\evil`:         "______evil",
		"Klingon 2":          "klingon_2",
		"":                   "_",
	}
	for in, want := range tests {
		assert.Equal(t, want, Languages.FileCode(in), in)
	}
}

func TestSpellTranslationsImmutable(t *testing.T) {
	base := EnglishOnly("Fire", "Burns")
	withFR := base.With("French", Translation{Name: "Brasier"})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, []string{"English", "French"}, withFR.Languages())

	replaced := withFR.With("English", Translation{Name: "Fira"})
	en, _ := withFR.English()
	assert.Equal(t, "Fire", en.Name)
	en, _ = replaced.English()
	assert.Equal(t, "Fira", en.Name)
	assert.Equal(t, []string{"English", "French"}, replaced.Languages())

	assert.Equal(t, []string{"French"}, withFR.Without("English").Languages())

	_, ok := SpellTranslations{}.English()
	assert.False(t, ok)
}
