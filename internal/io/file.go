package ioutils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// CopyFile copies a file from source to destination on fsys.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. Parent directories of dst must exist.
//
// Returns an error if:
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy or close fails
func CopyFile(fsys afero.Fs, src, dst string) (err error) {
	sourceFile, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := fsys.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// WriteFile writes data to a file, creating it and its parent
// directories if necessary. An existing file is truncated.
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	if err := EnsureDir(fsys, filepath.Dir(path)); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(fsys afero.Fs, path string) error {
	return fsys.MkdirAll(path, 0755)
}

// IsFile reports whether path exists and is a regular file.
func IsFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
