package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/pranavi39/pawfect/internal/domain"
)

// rowBatch is the number of rows read from a row group per call.
const rowBatch = 256

// ReadParquet reads a flat parquet file. Top-level columns become the header
// and every leaf value is rendered as a string; nulls become "".
func ReadParquet(path string) (*Table, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", domain.ErrDataUnavailable, path, err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet %s: %w", domain.ErrDataUnavailable, path, err)
	}

	leaves := pf.Schema().Columns()
	header := make([]string, len(leaves))
	for i, leaf := range leaves {
		if len(leaf) > 0 {
			header[i] = leaf[0]
		}
	}

	rows := make([][]string, 0, pf.NumRows())
	for _, rg := range pf.RowGroups() {
		if rows, err = readRowGroup(rg, len(header), rows); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrDataUnavailable, path, err)
		}
	}

	return newTable(filepath.Base(path), header, rows), nil
}

func readRowGroup(rg parquet.RowGroup, width int, rows [][]string) ([][]string, error) {
	reader := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, rowBatch)

	for {
		n, readErr := reader.ReadRows(buf)
		for i := 0; i < n; i++ {
			rows = append(rows, rowToStrings(buf[i], width))
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return rows, nil
			}
			return rows, fmt.Errorf("read rows: %w", readErr)
		}
	}
}

func rowToStrings(row parquet.Row, width int) []string {
	out := make([]string, width)
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= width || v.IsNull() {
			continue
		}
		out[col] = v.String()
	}
	return out
}
