package pkg

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/ff8magic/internal/exportdir"
	"github.com/provide-io/ff8magic/pkg/magic/export"
	"github.com/provide-io/ff8magic/pkg/magic/format"
	"github.com/provide-io/ff8magic/pkg/magic/kernel"
	"github.com/provide-io/ff8magic/pkg/magic/spellfile"
)

// DumpKernel loads kernelPath and writes its spells to outPath as YAML.
func DumpKernel(kernelPath, outPath string, logger hclog.Logger) ([]format.MagicData, error) {
	loader := kernel.NewLoaderWithOptions(nil, kernel.Options{Logger: logger})
	spells, err := loader.Load(kernelPath)
	if err != nil {
		return nil, err
	}
	if outPath != "" {
		if err := spellfile.Save(outPath, kernelPath, spells); err != nil {
			return nil, err
		}
	}
	return spells, nil
}

// MergeSpells applies edits to kernel spells, matching them by magic id.
// Identity fields (index, magic id, text pointers, text) of the kernel spell
// are kept. It returns the merged set and the number of spells changed.
func MergeSpells(kernelSpells, edits []format.MagicData) ([]format.MagicData, int, error) {
	byID := make(map[uint16]int, len(kernelSpells))
	for i, m := range kernelSpells {
		byID[m.MagicID] = i
	}

	merged := make([]format.MagicData, len(kernelSpells))
	copy(merged, kernelSpells)

	changed := 0
	for _, e := range edits {
		i, ok := byID[e.MagicID]
		if !ok {
			return nil, 0, fmt.Errorf("magic id %d is not in the kernel", e.MagicID)
		}
		orig := merged[i]
		e.Index = orig.Index
		e.OffsetSpellName = orig.OffsetSpellName
		e.OffsetSpellDescription = orig.OffsetSpellDescription
		e.Translations = orig.Translations
		e.IsNewlyCreated = false

		a, _ := format.SerializeRecord(orig)
		b, _ := format.SerializeRecord(e)
		if string(a) != string(b) {
			changed++
		}
		merged[i] = e
	}
	return merged, changed, nil
}

// PatchOptions configure PatchKernel.
type PatchOptions struct {
	OutPath string // defaults to the kernel path
	Backup  string // backup operation, "none" to disable
	Logger  hclog.Logger
}

// PatchKernel applies the spells in spellsPath to kernelPath and saves the
// result. Only the magic section of the file changes.
func PatchKernel(kernelPath, spellsPath string, opts PatchOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	edits, err := spellfile.Load(spellsPath)
	if err != nil {
		return 0, err
	}

	repo := kernel.NewMemoryRepository()
	loader := kernel.NewLoaderWithOptions(repo, kernel.Options{Logger: logger, Backup: opts.Backup})
	if _, err := loader.Load(kernelPath); err != nil {
		return 0, err
	}

	merged, changed, err := MergeSpells(repo.All(), edits)
	if err != nil {
		return 0, err
	}
	repo.Replace(merged)

	out := opts.OutPath
	if out == "" {
		out = kernelPath
	}
	if out != kernelPath {
		data, err := loader.SaveBytes()
		if err != nil {
			return 0, err
		}
		if _, err := exportdir.WriteFile(out, data); err != nil {
			return 0, err
		}
	} else if err := loader.Save(out); err != nil {
		return 0, err
	}

	logger.Info("🩹 Kernel patched", "path", out, "changed", changed)
	return changed, nil
}

// ValidateSpellFile runs export validation over the new spells of a spell file.
func ValidateSpellFile(spellsPath string) (export.ValidationResult, error) {
	spells, err := spellfile.Load(spellsPath)
	if err != nil {
		return export.ValidationResult{}, err
	}
	var batch []format.MagicData
	for _, m := range spells {
		if m.IsNewlyCreated {
			batch = append(batch, m)
		}
	}
	return export.ValidateSpells(batch), nil
}

// ExportSpellFile runs the export pipeline over the spells of a spell file.
func ExportSpellFile(spellsPath string, opts export.Options) (export.Result, error) {
	spells, err := spellfile.Load(spellsPath)
	if err != nil {
		return export.Result{}, err
	}
	return export.NewExporter(opts).Export(spells), nil
}

// ImportBinary reads an exported binary with its resource files and
// optionally writes the spells to outPath as YAML.
func ImportBinary(binPath, outPath string, opts export.ImportOptions) (export.ImportResult, error) {
	result, err := export.NewImporter(opts).Import(binPath)
	if err != nil {
		return result, err
	}
	if outPath != "" {
		if err := spellfile.Save(outPath, binPath, result.Spells); err != nil {
			return result, err
		}
	}
	return result, nil
}
