package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/halmertz/vertrag/internal/common"
)

// DecodeFile decodes a spreadsheet file into rows based on its extension.
func DecodeFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return DecodeCSV(f)
	case ".xlsx":
		return DecodeXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFile, filepath.Ext(path))
	}
}
