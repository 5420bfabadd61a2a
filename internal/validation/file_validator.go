package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "bikeshare/internal/errors"
)

// FileValidator checks that trip sources and the data directory are usable
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateDataDirectory checks that dir exists and is a directory.
// Failures are NOT_FOUND AppErrors.
func (v *FileValidator) ValidateDataDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		v.logger.Warn("Data directory unavailable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewDataNotFoundError(dir, err)
	}
	if !info.IsDir() {
		v.logger.Warn("Data path is not a directory", slog.String("path", dir))
		return apperrors.NewDataNotFoundError(dir, fmt.Errorf("%s is not a directory", dir))
	}
	return nil
}

// ValidateFile checks that path exists, is a regular file and can be opened.
// Failures are NOT_FOUND AppErrors wrapping the underlying cause.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Warn("File does not exist", slog.String("file", path))
		return apperrors.NewDataNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Warn("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewDataNotFoundError(path, err)
	}
	if info.IsDir() {
		v.logger.Warn("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewDataNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Warn("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewDataNotFoundError(path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSourceFile checks a trip source: it must pass ValidateFile, carry a
// .csv or .xlsx extension and not be a spreadsheet lock file.
// A wrong extension is a VALIDATION AppError.
func (v *FileValidator) ValidateSourceFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Skipping temporary spreadsheet file", slog.String("file", path))
		return apperrors.NewValidationError(fmt.Sprintf("file %s is a temporary spreadsheet file", path))
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".xlsx":
		return nil
	default:
		v.logger.Warn("Unsupported source format",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewValidationError(fmt.Sprintf("file %s is not a CSV or XLSX file (extension: %s)", path, ext)).
			WithContext("extension", ext)
	}
}
