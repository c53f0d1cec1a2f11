package pkg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/ff8magic/pkg/magic/format"
	"github.com/provide-io/ff8magic/pkg/magic/kernel"
)

// VerifyReport describes a kernel load/save round trip.
type VerifyReport struct {
	Path      string
	Size      int
	Spells    int
	Named     int   // spells with non-empty English names
	Identical bool  // re-serialized image equals the input
	Records   []int // positions of records that changed
}

// VerifyKernelWithLogger loads a kernel, serializes it again in memory and
// compares the result with the file. A mismatch returns ErrKernelMismatch
// along with the report.
func VerifyKernelWithLogger(path string, logger hclog.Logger) (VerifyReport, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	report := VerifyReport{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("failed to read kernel %s: %w", path, err)
	}
	report.Size = len(data)

	logger.Info("Verifying kernel round trip", "path", path)
	loader := kernel.NewLoaderWithOptions(nil, kernel.Options{Logger: logger})
	spells, err := loader.LoadBytes(data)
	if err != nil {
		logger.Error("Kernel load failed", "error", err)
		return report, err
	}
	report.Spells = len(spells)
	for _, m := range spells {
		if m.EnglishName() != "" {
			report.Named++
		}
	}

	out, err := loader.SaveBytes()
	if err != nil {
		logger.Error("Kernel save failed", "error", err)
		return report, err
	}

	report.Identical = bytes.Equal(data, out)
	if report.Identical {
		logger.Info("✓ Kernel round trip identical", "spells", report.Spells, "named", report.Named)
		return report, nil
	}

	for i := 0; i < format.KernelMagicCount; i++ {
		start := format.KernelMagicOffset + i*format.RecordSize
		end := start + format.RecordSize
		if !bytes.Equal(data[start:end], out[start:end]) {
			report.Records = append(report.Records, i)
			logger.Error("  Record differs", "position", i)
		}
	}
	logger.Error("✗ Kernel verification failed", "records", len(report.Records))
	return report, ErrKernelMismatch
}

// VerifyKernel verifies a kernel without logging.
func VerifyKernel(path string) (VerifyReport, error) {
	return VerifyKernelWithLogger(path, nil)
}
