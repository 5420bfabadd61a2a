package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations used at runtime
type Paths struct {
	ExecutableDir string
	WorkingDir    string
	DataDir       string
}

// GetPaths resolves dataDir to an absolute directory.
// Absolute paths are used as given. Relative paths are tried against the
// working directory first and then against the executable directory, so the
// tool works both from a checkout and from an installed location.
func GetPaths(dataDir string) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir = filepath.Dir(exe)
	}

	paths := &Paths{
		ExecutableDir: exeDir,
		WorkingDir:    wd,
		DataDir:       resolveDataDir(dataDir, wd, exeDir),
	}

	slog.Default().Debug("Resolved data directory",
		slog.String("configured", dataDir),
		slog.String("data_dir", paths.DataDir),
		slog.String("working_dir", wd),
		slog.String("executable_dir", exeDir))

	return paths, nil
}

func resolveDataDir(dataDir, wd, exeDir string) string {
	if filepath.IsAbs(dataDir) {
		return filepath.Clean(dataDir)
	}

	candidate := filepath.Join(wd, dataDir)
	if DirExists(candidate) || exeDir == "" {
		return candidate
	}

	if fromExe := filepath.Join(exeDir, dataDir); DirExists(fromExe) {
		return fromExe
	}
	return candidate
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// DirExists checks if path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
