package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/handiism/discpack/internal/logging"
	"github.com/spf13/afero"
)

// Suffix is appended to the pack directory to name its archive.
const Suffix = ".zip"

// Error reports a failed archive. The pack tree is left in place and no
// partial archive remains.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsError reports whether err is or wraps an archive Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Zip archives every file below dir into <dir>.zip and removes dir.
//
// An existing archive is replaced. Entry names are slash-separated paths
// relative to dir, so the pack manifest sits at the archive root. Files
// are deflated. When writing fails the partial archive is removed, dir is
// kept and an *Error is returned.
func Zip(fsys afero.Fs, dir string) (string, error) {
	log := logging.GetLogger("archive")
	dir = filepath.Clean(dir)
	zipPath := dir + Suffix

	if err := fsys.Remove(zipPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", &Error{Path: zipPath, Err: fmt.Errorf("remove old archive: %w", err)}
	}

	if err := writeZip(fsys, dir, zipPath); err != nil {
		if rmErr := fsys.Remove(zipPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Warn().Err(rmErr).Str("path", zipPath).Msg("Failed to remove partial archive")
		}
		return "", &Error{Path: zipPath, Err: err}
	}

	if err := fsys.RemoveAll(dir); err != nil {
		return zipPath, fmt.Errorf("remove %s after archiving: %w", dir, err)
	}

	log.Info().Str("path", zipPath).Msg("Pack archived")
	return zipPath, nil
}

func writeZip(fsys afero.Fs, dir, zipPath string) (err error) {
	zipFile, err := fsys.OpenFile(zipPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create ZIP file: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return afero.Walk(fsys, dir, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		if relPath == "." {
			return nil
		}
		zipName := filepath.ToSlash(relPath)

		if info.IsDir() {
			if _, createErr := zipWriter.Create(zipName + "/"); createErr != nil {
				return fmt.Errorf("failed to create directory entry: %w", createErr)
			}
			return nil
		}

		header, headerErr := zip.FileInfoHeader(info)
		if headerErr != nil {
			return fmt.Errorf("failed to create file header: %w", headerErr)
		}
		header.Name = zipName
		header.Method = zip.Deflate

		writer, writerErr := zipWriter.CreateHeader(header)
		if writerErr != nil {
			return fmt.Errorf("failed to create ZIP entry: %w", writerErr)
		}
		return copyInto(fsys, path, writer)
	})
}

func copyInto(fsys afero.Fs, path string, w io.Writer) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
