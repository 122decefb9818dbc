package tabular

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// ReadFile reads the table at path, choosing the reader from its
// extension.
func ReadFile(ctx context.Context, path string, opts Options) (*annotation.RecordSet, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSQLite {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rs, err := ReadSQLite(ctx, path, opts.table())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return rs, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	var rs *annotation.RecordSet
	switch format {
	case FormatXLSX:
		rs, err = ReadXLSX(f, opts.Sheet)
	case FormatZip:
		var info os.FileInfo
		if info, err = f.Stat(); err == nil {
			rs, _, err = ReadZip(f, info.Size())
		}
	default:
		rs, err = ReadDelimited(bufio.NewReader(f), format.Comma())
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// WriteFile writes rs to path, choosing the writer from its extension and
// creating parent directories as needed. A zip archive holds one member
// named after the archive.
func WriteFile(ctx context.Context, path string, rs *annotation.RecordSet, opts Options) (err error) {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if format == FormatSQLite {
		return WriteSQLite(ctx, path, opts.table(), rs)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	switch format {
	case FormatXLSX:
		err = WriteXLSX(w, rs, opts.RStats)
	case FormatZip:
		member := opts.member()
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + string(member)
		err = WriteZip(w, name, rs, member, opts.RStats)
	default:
		err = WriteDelimited(w, rs, format.Comma(), opts.RStats)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Flush()
}

// Write encodes rs to w in a streaming format (CSV or TSV).
func Write(w io.Writer, rs *annotation.RecordSet, format Format, rstats bool) error {
	if !format.Delimited() {
		return fmt.Errorf("%w: cannot stream %s", ErrUnsupportedFormat, format)
	}
	return WriteDelimited(w, rs, format.Comma(), rstats)
}
