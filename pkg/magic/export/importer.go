package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/format"
)

// ImportOptions configures an Importer.
type ImportOptions struct {
	// Slot sizes used when the records' text pointers do not describe the
	// resource files. Zero selects the format defaults.
	NameSlotSize int
	DescSlotSize int
	Logger       hclog.Logger
}

// ImportResult is the outcome of reading a magic binary and its resources.
type ImportResult struct {
	Spells            []format.MagicData
	Languages         []string
	Files             []string
	Warnings          []string
	UsedPointerLayout bool
}

// Importer reads exports produced by Exporter, or compatible files.
type Importer struct {
	nameSlot int
	descSlot int
	logger   hclog.Logger
}

// NewImporter creates an importer.
func NewImporter(opts ImportOptions) *Importer {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	im := &Importer{
		nameSlot: opts.NameSlotSize,
		descSlot: opts.DescSlotSize,
		logger:   logger.Named("import"),
	}
	if im.nameSlot <= 0 {
		im.nameSlot = format.DefaultNameSlotSize
	}
	if im.descSlot <= 0 {
		im.descSlot = format.DefaultDescSlotSize
	}
	return im
}

// Import reads binPath and its sibling resource files. The English resource
// file is mandatory; other languages are optional and reported as warnings
// when absent. Imported spells are marked newly created.
func (im *Importer) Import(binPath string) (ImportResult, error) {
	var result ImportResult

	data, err := os.ReadFile(binPath)
	if err != nil {
		return result, fmt.Errorf("failed to read magic binary: %w", err)
	}
	records, err := format.ParseRecords(data)
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, binPath)
	im.logger.Info("📂 Read magic binary", "path", binPath, "records", len(records))

	base := strings.TrimSuffix(binPath, filepath.Ext(binPath))

	blobs := make(map[string][]byte)
	var order []string
	for _, lang := range format.Languages.All() {
		path, blob, err := readResource(base, lang)
		switch {
		case err == nil:
			blobs[lang.Name] = blob
			order = append(order, lang.Name)
			result.Files = append(result.Files, path)
		case errors.Is(err, fs.ErrNotExist) && lang.Name == format.LanguageEnglish:
			return result, fmt.Errorf("%w: %s_%s%s", magicerrors.ErrMissingMandatoryLanguageFile, filepath.Base(base), lang.Code, format.ResourceSuffix)
		case errors.Is(err, fs.ErrNotExist):
			msg := fmt.Sprintf("no %s resource file, skipped", lang.Name)
			result.Warnings = append(result.Warnings, msg)
			im.logger.Debug("⚠️ Optional resource missing", "language", lang.Name)
		default:
			return result, err
		}
	}

	english := blobs[format.LanguageEnglish]
	layout, ok := format.LayoutFromPointers(records, len(english))
	if !ok {
		layout = format.FixedLayout(len(records), im.nameSlot, im.descSlot)
		im.logger.Debug("📐 Using fixed slot layout", "name_slot", im.nameSlot, "desc_slot", im.descSlot)
	}
	result.UsedPointerLayout = ok

	texts := make([]format.SpellTranslations, len(records))
	for _, lang := range order {
		entries, truncated := format.ReadResourcesWithLayout(blobs[lang], layout)
		if truncated > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s resource file is shorter than expected (%d slots truncated)", lang, truncated))
		}
		for i, tr := range entries {
			texts[i] = texts[i].With(lang, tr)
		}
	}

	for i, m := range records {
		m.Translations = texts[i]
		m.IsNewlyCreated = true
		result.Spells = append(result.Spells, m.WithIndex(i))
	}
	result.Languages = order

	im.logger.Info("✅ Import completed", "spells", len(result.Spells), "languages", len(order), "warnings", len(result.Warnings))
	return result, nil
}

// readResource tries the short and then the long file name of lang.
func readResource(base string, lang format.Language) (string, []byte, error) {
	var lastErr error
	for _, code := range []string{lang.Code, lang.LongCode} {
		path := fmt.Sprintf("%s_%s%s", base, code, format.ResourceSuffix)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("failed to read %s resource: %w", lang.Name, err)
		}
		lastErr = err
	}
	return "", nil, lastErr
}
