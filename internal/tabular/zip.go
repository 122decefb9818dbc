package tabular

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// ReadZip reads the first CSV or TSV member of a zip archive and returns
// it with the member name.
func ReadZip(r io.ReaderAt, size int64) (*annotation.RecordSet, string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		format, err := DetectFormat(f.Name)
		if err != nil || !format.Delimited() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		rs, err := ReadDelimited(rc, format.Comma())
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", f.Name, err)
		}
		return rs, f.Name, nil
	}
	return nil, "", fmt.Errorf("%w: archive has no csv or tsv member", ErrUnsupportedFormat)
}

// WriteZip writes rs as a single delimited member named member.
func WriteZip(w io.Writer, member string, rs *annotation.RecordSet, format Format, rstats bool) error {
	if !format.Delimited() {
		return fmt.Errorf("%w: zip member must be csv or tsv, got %s", ErrUnsupportedFormat, format)
	}

	zw := zip.NewWriter(w)
	fw, err := zw.Create(path.Base(member))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", member, err)
	}
	if err := WriteDelimited(fw, rs, format.Comma(), rstats); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}
