package pkg

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/ff8magic/pkg/magic/export"
	"github.com/provide-io/ff8magic/pkg/magic/format"
	"github.com/provide-io/ff8magic/pkg/magic/spellfile"
)

func writeKernel(t *testing.T) (string, []byte) {
	t.Helper()
	data := make([]byte, format.KernelMagicEnd+32)
	for i := 0; i < format.KernelMagicCount; i++ {
		rec := data[format.KernelMagicOffset+i*format.RecordSize:]
		binary.LittleEndian.PutUint16(rec[0x04:], uint16(i))
		rec[0x08] = byte(i * 2)
	}
	for i := format.KernelMagicEnd; i < len(data); i++ {
		data[i] = 0xAA
	}
	path := filepath.Join(t.TempDir(), "kernel.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path, data
}

func TestVerifyKernel(t *testing.T) {
	path, data := writeKernel(t)

	report, err := VerifyKernel(path)
	require.NoError(t, err)
	assert.True(t, report.Identical)
	assert.Equal(t, len(data), report.Size)
	assert.Equal(t, format.KernelMagicCount, report.Spells)
	assert.Empty(t, report.Records)

	short := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(short, data[:100], 0o644))
	_, err = VerifyKernel(short)
	assert.Error(t, err)
}

func TestMergeSpells(t *testing.T) {
	base := []format.MagicData{
		{Index: 0, MagicID: 0, OffsetSpellName: 5, Translations: format.EnglishOnly("Fire", "")},
		{Index: 1, MagicID: 1, SpellPower: 10},
	}
	edits := []format.MagicData{
		{Index: 9, MagicID: 1, SpellPower: 30, IsNewlyCreated: true},
		{MagicID: 0, OffsetSpellName: 99},
	}

	merged, changed, err := MergeSpells(base, edits)
	require.NoError(t, err)
	assert.Equal(t, 1, changed, "pointer-only edits are ignored")
	assert.Equal(t, uint8(30), merged[1].SpellPower)
	assert.Equal(t, 1, merged[1].Index)
	assert.False(t, merged[1].IsNewlyCreated)
	assert.Equal(t, uint16(5), merged[0].OffsetSpellName)
	assert.Equal(t, "Fire", merged[0].EnglishName())
	assert.Equal(t, uint8(10), base[1].SpellPower, "input untouched")

	_, _, err = MergeSpells(base, []format.MagicData{{MagicID: 77}})
	assert.Error(t, err)
}

func TestDumpPatchRoundTrip(t *testing.T) {
	path, data := writeKernel(t)
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "spells.yaml")

	spells, err := DumpKernel(path, yamlPath, nil)
	require.NoError(t, err)
	require.Len(t, spells, format.KernelMagicCount)

	edited := spells[7]
	edited.SpellPower = 200
	edited.Element = format.ElementHoly
	require.NoError(t, spellfile.Save(yamlPath, "edit", []format.MagicData{edited}))

	out := filepath.Join(dir, "patched.bin")
	changed, err := PatchKernel(path, yamlPath, PatchOptions{OutPath: out, Backup: "none"})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	patched, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, patched, len(data))

	rec := format.KernelMagicOffset + 7*format.RecordSize
	assert.Equal(t, byte(200), patched[rec+0x08])
	assert.Equal(t, byte(format.ElementHoly), patched[rec+0x0E])
	assert.Equal(t, data[:rec], patched[:rec])
	assert.Equal(t, data[rec+format.RecordSize:], patched[rec+format.RecordSize:])

	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, original, "input kernel untouched when an output path is given")
}

func TestPatchInPlaceWritesBackup(t *testing.T) {
	path, _ := writeKernel(t)
	yamlPath := filepath.Join(t.TempDir(), "spells.yaml")
	require.NoError(t, spellfile.Save(yamlPath, "edit", []format.MagicData{{MagicID: 3, HitCount: 2}}))

	_, err := PatchKernel(path, yamlPath, PatchOptions{Backup: "gzip"})
	require.NoError(t, err)

	_, err = os.Stat(path + ".bak.gz")
	assert.NoError(t, err)
}

func TestExportValidateImport(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "new.yaml")
	spells := []format.MagicData{
		{
			MagicID: 300, SpellPower: 80, IsNewlyCreated: true,
			Translations: format.EnglishOnly("Meteor", "Heavy damage").
				With("French", format.Translation{Name: "Meteore", Description: "Gros degats"}),
		},
		{MagicID: 301, IsNewlyCreated: true, Index: 1, Translations: format.EnglishOnly("Comet", "Random damage")},
	}
	require.NoError(t, spellfile.Save(yamlPath, "test", spells))

	validation, err := ValidateSpellFile(yamlPath)
	require.NoError(t, err)
	assert.True(t, validation.IsValid())
	assert.Len(t, validation.Warnings, 1)

	outDir := filepath.Join(dir, "out")
	result, err := ExportSpellFile(yamlPath, export.Options{Dir: outDir, BaseName: "custom", WriteManifest: true})
	require.NoError(t, err)
	require.True(t, result.Success, "%v", result.Errors)

	imported, err := ImportBinary(filepath.Join(outDir, "custom.bin"), filepath.Join(dir, "imported.yaml"), export.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, imported.Spells, 2)
	assert.True(t, imported.UsedPointerLayout)
	assert.Equal(t, "Comet", imported.Spells[1].EnglishName())

	fr, ok := imported.Spells[1].Translations.Get("French")
	require.True(t, ok)
	assert.Equal(t, "Comet", fr.Name)

	back, err := spellfile.Load(filepath.Join(dir, "imported.yaml"))
	require.NoError(t, err)
	assert.Equal(t, uint8(80), back[0].SpellPower)
}

func TestExportSpellFileMissing(t *testing.T) {
	_, err := ExportSpellFile(filepath.Join(t.TempDir(), "nope.yaml"), export.Options{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrKernelMismatch))
}
