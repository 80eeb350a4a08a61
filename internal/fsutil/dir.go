package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/calparse/internal/errs"
)

// MkdirExclusive creates dir, creating missing parents as needed. It fails
// with an errs.ErrFilesystemConflict error if dir already exists and never
// touches an existing directory.
func MkdirExclusive(dir string, perm os.FileMode) error {
	const op = "fsutil.MkdirExclusive"

	if parent := filepath.Dir(dir); parent != "." {
		if err := os.MkdirAll(parent, perm); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := os.Mkdir(dir, perm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errs.Wrap(err, errs.KindFilesystemConflict, op)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// WriteFileAtomic writes a file through a temporary file in the same
// directory and renames it into place once fill has succeeded.
func WriteFileAtomic(path string, perm os.FileMode, fill func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
