// Package export turns newly-created spells into a standalone magic binary
// plus one text resource file per language, and reads such exports back.
package export

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/ff8magic/internal/exportdir"
	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/format"
)

// Stage is a step of the export pipeline. Stages only move forward.
type Stage int

const (
	StageStarted Stage = iota
	StageCollecting
	StageValidating
	StageFallbackApplied
	StageLayout
	StageResourceGen
	StageBinaryGen
	StageSucceeded
	StageFailed
)

var stageNames = [...]string{
	"STARTED", "COLLECTING", "VALIDATING", "FALLBACK_APPLIED", "LAYOUT",
	"RESOURCE_GEN", "BINARY_GEN", "SUCCEEDED", "FAILED",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Options configures an Exporter.
type Options struct {
	Dir           string // target directory, created if missing
	BaseName      string // file name stem, e.g. "custom_magic"
	WriteManifest bool
	Logger        hclog.Logger
	Listener      Listener
}

// Result aggregates the outcome of one export.
type Result struct {
	Success bool

	// Stage is SUCCEEDED, or the stage that failed.
	Stage Stage

	SpellCount   int
	FileCount    int
	BytesWritten int64
	Duration     time.Duration
	Files        []string
	Languages    []string
	Errors       []string
	Warnings     []string

	// Err wraps the sentinel of the first failure, for errors.Is.
	Err error

	Layout format.TextLayout
}

// Exporter runs the export pipeline. An Exporter holds no state between
// calls; independent exporters may run concurrently against disjoint dirs.
type Exporter struct {
	dir           string
	baseName      string
	writeManifest bool
	logger        hclog.Logger
	listener      Listener
}

// NewExporter creates an exporter.
func NewExporter(opts Options) *Exporter {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Exporter{
		dir:           opts.Dir,
		baseName:      opts.BaseName,
		writeManifest: opts.WriteManifest,
		logger:        logger.Named("export"),
		listener:      opts.Listener,
	}
}

// run carries the state of one Export call.
type run struct {
	e       *Exporter
	start   time.Time
	stage   Stage
	result  Result
	written []exportdir.FileEntry
}

func (r *run) enter(s Stage) {
	r.e.logger.Debug("➡️ Export stage", "from", r.stage.String(), "to", s.String())
	r.stage = s
}

func (r *run) fail(err error, details ...string) Result {
	r.result.Success = false
	r.result.Stage = r.stage
	r.result.Err = fmt.Errorf("%w at %s: %w", magicerrors.ErrExportFailed, r.stage, err)
	if len(details) == 0 {
		details = []string{err.Error()}
	}
	r.result.Errors = append(r.result.Errors, details...)
	r.result.Duration = time.Since(r.start)
	r.collectFiles()

	r.e.logger.Error("❌ Export failed",
		"stage", r.stage.String(),
		"errors", len(r.result.Errors),
		"files_left", len(r.written),
		"error", err,
	)
	if len(r.written) > 0 {
		if mErr := exportdir.MarkIncomplete(r.e.dir, err.Error(), r.result.Files); mErr != nil {
			r.e.logger.Warn("⚠️ Failed to write incomplete marker", "error", mErr)
		}
	}

	r.stage = StageFailed
	r.e.emit(Event{Kind: EventFailed, Errors: r.result.Errors})
	return r.result
}

func (r *run) collectFiles() {
	r.result.Files = r.result.Files[:0]
	r.result.BytesWritten = 0
	for _, f := range r.written {
		r.result.Files = append(r.result.Files, f.Path)
		r.result.BytesWritten += f.Size
	}
	r.result.FileCount = len(r.result.Files)
}

func (r *run) write(path, language string, data []byte) error {
	n, err := exportdir.WriteFile(path, data)
	if err != nil {
		return err
	}
	r.written = append(r.written, exportdir.FileEntry{Path: path, Language: language, Size: n})
	r.e.logger.Debug("💾 Wrote file", "path", path, "size", n)
	return nil
}

// Export writes every newly-created spell in spells. Spells loaded from the
// kernel are skipped. Files written before a failure are left on disk and
// listed in the failed result.
func (e *Exporter) Export(spells []format.MagicData) Result {
	r := &run{e: e, start: time.Now(), stage: StageStarted}
	e.logger.Info("🚀 Export started", "dir", e.dir, "base", e.baseName)
	e.emit(Event{Kind: EventStarted})

	// Collect
	r.enter(StageCollecting)
	batch, origIndex := collectNewSpells(spells)
	r.result.SpellCount = len(batch)
	if len(batch) == 0 {
		r.enter(StageValidating)
		return r.fail(magicerrors.ErrEmptyExportSet)
	}
	e.logger.Debug("📋 Collected spells", "count", len(batch), "skipped", len(spells)-len(batch))

	// Validate
	r.enter(StageValidating)
	texts := make(map[int]format.SpellTranslations, len(batch))
	for _, m := range batch {
		texts[m.Index] = m.Translations
	}
	validation := Validate(texts).remap(origIndex)
	r.result.Warnings = validation.WarningStrings()
	for _, w := range r.result.Warnings {
		e.logger.Warn("⚠️ Validation warning", "details", w)
	}
	if !validation.IsValid() {
		return r.fail(firstIssueErr(validation.Errors), validation.ErrorStrings()...)
	}

	// Fallback
	r.enter(StageFallbackApplied)
	texts = NormalizeLanguages(texts)
	required := RequiredLanguages(texts)
	complete := ApplyEnglishFallback(texts, required)
	r.result.Languages = required

	// Layout
	r.enter(StageLayout)
	planInput := make([]format.SpellText, 0, len(batch))
	for _, m := range batch {
		planInput = append(planInput, format.SpellText{Index: m.Index, Translations: complete[m.Index]})
	}
	layout := format.PlanLayout(planInput)
	r.result.Layout = layout
	e.logger.Debug("📐 Layout planned", "spells", layout.Len(), "text_size", layout.TotalSize(), "languages", required)

	// Resource files
	r.enter(StageResourceGen)
	if err := exportdir.Prepare(e.dir); err != nil {
		return r.fail(err)
	}
	for _, lang := range layout.Languages() {
		entries := make(map[int]format.Translation, len(complete))
		for idx, tr := range complete {
			entries[idx], _ = tr.Get(lang)
		}
		blob, err := format.WriteResourcesWithLayout(layout, entries)
		if err != nil {
			return r.fail(err, r.partial(fmt.Sprintf("%s resource: %v", lang, err))...)
		}
		path := exportdir.ResourcePath(e.dir, e.baseName, format.Languages.FileCode(lang))
		if err := r.write(path, lang, blob); err != nil {
			return r.fail(err, r.partial(fmt.Sprintf("%s resource: %v", lang, err))...)
		}
	}

	// Binary
	r.enter(StageBinaryGen)
	binary, err := buildBinary(batch, layout)
	if err != nil {
		return r.fail(err)
	}
	if err := r.write(exportdir.BinaryPath(e.dir, e.baseName), "", binary); err != nil {
		return r.fail(err, r.partial(err.Error())...)
	}

	// Aggregate
	r.enter(StageSucceeded)
	r.collectFiles()
	if e.writeManifest {
		manifest := exportdir.Manifest{
			Timestamp:  time.Now().UTC(),
			BaseName:   e.baseName,
			SpellCount: len(batch),
			Languages:  required,
			TextSize:   layout.TotalSize(),
			Files:      r.written,
		}
		if _, err := exportdir.WriteManifest(e.dir, manifest); err != nil {
			e.logger.Warn("⚠️ Failed to write export manifest", "error", err)
		}
	}
	r.result.Success = true
	r.result.Stage = StageSucceeded
	r.result.Duration = time.Since(r.start)

	e.logger.Info("✅ Export completed",
		"spells", r.result.SpellCount,
		"files", r.result.FileCount,
		"bytes", r.result.BytesWritten,
		"duration", r.result.Duration,
	)
	e.emit(Event{Kind: EventCompleted, Files: r.result.Files})
	return r.result
}

// partial appends the list of files already on disk to an error message.
func (r *run) partial(msg string) []string {
	details := []string{msg}
	for _, f := range r.written {
		details = append(details, "already written: "+f.Path)
	}
	return details
}

// collectNewSpells returns the newly-created spells ordered by their current
// index and renumbered from 0, along with each spell's index before
// renumbering.
func collectNewSpells(spells []format.MagicData) ([]format.MagicData, []int) {
	var batch []format.MagicData
	for _, m := range spells {
		if m.IsNewlyCreated {
			batch = append(batch, m)
		}
	}
	sort.SliceStable(batch, func(i, j int) bool { return batch[i].Index < batch[j].Index })
	orig := make([]int, len(batch))
	for i := range batch {
		orig[i] = batch[i].Index
		batch[i] = batch[i].WithIndex(i)
	}
	return batch, orig
}

// buildBinary serializes the batch in layout order with text pointers taken
// from the layout.
func buildBinary(batch []format.MagicData, layout format.TextLayout) ([]byte, error) {
	out := make([]byte, 0, len(batch)*format.RecordSize)
	for _, m := range batch {
		slot, ok := layout.Slot(m.Index)
		if !ok {
			return nil, fmt.Errorf("spell %d missing from layout", m.Index)
		}
		namePtr, err := slot.NamePointer()
		if err != nil {
			return nil, err
		}
		descPtr, err := slot.DescPointer()
		if err != nil {
			return nil, err
		}
		record, err := format.SerializeRecord(m.WithTextPointers(namePtr, descPtr))
		if err != nil {
			return nil, err
		}
		out = append(out, record...)
	}
	return out, nil
}

func firstIssueErr(issues []Issue) error {
	for _, is := range issues {
		if is.Err != nil {
			return fmt.Errorf("%w: %s", is.Err, is.String())
		}
	}
	return errors.New("validation failed")
}
