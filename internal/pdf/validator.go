package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

// ValidatePDFPath validates that a file path points to a readable PDF.
func ValidatePDFPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ValidationError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ValidationError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.ValidationError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return domain.ValidationError(fmt.Sprintf("file is not a PDF (has extension %s)", ext), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.ValidationError(fmt.Sprintf("cannot open file: %s", path), err)
	}
	file.Close()

	return nil
}
