// Package compress registers the gzip and bzip2 operations used for kernel
// backups.
package compress

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/ff8magic/pkg/magic/operations"
)

// MaxRestoreSize bounds the output of Reverse. A retail kernel.bin is about
// 30 KiB, so anything near this is not a kernel backup.
const MaxRestoreSize = 16 << 20

var (
	// ErrWrongFormat is returned when Reverse is given data of another codec.
	ErrWrongFormat = errors.New("❌ backup data does not match operation")
	// ErrTooLarge is returned when restored data exceeds MaxRestoreSize.
	ErrTooLarge = errors.New("❌ restored backup too large")
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
)

var codecLogger hclog.Logger = hclog.NewNullLogger()

// SetLogger routes size reports of the codecs to logger.
func SetLogger(logger hclog.Logger) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	codecLogger = logger.Named("compress")
}

func init() {
	operations.Register(NewGzipOperation())
	operations.Register(NewBzip2Operation())
}

// StreamOperation compresses with a stream codec and recognises its own
// output by a leading magic number.
type StreamOperation struct {
	operations.BaseOperation
	magic     []byte
	newWriter func(w io.Writer) (io.WriteCloser, error)
	newReader func(r io.Reader) (io.ReadCloser, error)
}

// NewGzipOperation creates the gzip operation.
func NewGzipOperation() *StreamOperation {
	return &StreamOperation{
		BaseOperation: operations.BaseOperation{OpID: operations.OP_GZIP, OpName: "gzip", OpExt: ".gz"},
		magic:         gzipMagic,
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, gzip.BestCompression)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	}
}

// NewBzip2Operation creates the bzip2 operation.
func NewBzip2Operation() *StreamOperation {
	return &StreamOperation{
		BaseOperation: operations.BaseOperation{OpID: operations.OP_BZIP2, OpName: "bzip2", OpExt: ".bz2"},
		magic:         bzip2Magic,
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: 9})
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return bzip2.NewReader(r, &bzip2.ReaderConfig{})
		},
	}
}

// Apply compresses input.
func (o *StreamOperation) Apply(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := o.newWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%s writer: %w", o.OpName, err)
	}
	if _, err := w.Write(input); err != nil {
		w.Close()
		return nil, fmt.Errorf("%s write: %w", o.OpName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s close: %w", o.OpName, err)
	}

	codecLogger.Trace("🗜️ Compressed", "operation", o.OpName, "in", len(input), "out", buf.Len(),
		"ratio", ratio(buf.Len(), len(input)))
	return buf.Bytes(), nil
}

// Reverse decompresses input after checking it starts with the codec's
// magic number.
func (o *StreamOperation) Reverse(input []byte) ([]byte, error) {
	if !bytes.HasPrefix(input, o.magic) {
		return nil, fmt.Errorf("%w: expected %s", ErrWrongFormat, o.OpName)
	}
	r, err := o.newReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%s reader: %w", o.OpName, err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxRestoreSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s read: %w", o.OpName, err)
	}
	if len(data) > MaxRestoreSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxRestoreSize)
	}

	codecLogger.Trace("📤 Decompressed", "operation", o.OpName, "in", len(input), "out", len(data))
	return data, nil
}

func ratio(out, in int) string {
	if in == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(out)*100/float64(in))
}
