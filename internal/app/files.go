package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/quill/internal/engine/buffer"
)

// LoadFile reads path into lines. A missing file is a new, empty document
// and reports exists == false. Line endings may be LF or CRLF.
func LoadFile(path string) (lines []string, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, NewOperationError("load", path, err)
	}
	return SplitLines(string(data)), true, nil
}

// SplitLines splits text into lines. A trailing newline does not start
// another line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// FileStore saves snapshots to the file system. It implements
// editor.Saver.
type FileStore struct {
	logger *Logger
}

// NewFileStore creates a file store that logs to logger.
func NewFileStore(logger *Logger) *FileStore {
	if logger == nil {
		logger = NullLogger
	}
	return &FileStore{logger: logger.WithComponent("files")}
}

// Save writes snap to name through a temporary file in the same directory
// and renames it into place, so a failed write leaves the old file intact.
// The existing file mode is kept.
func (s *FileStore) Save(name string, snap buffer.Snapshot) (int, error) {
	data := snap.Bytes()

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return 0, NewOperationError("save", name, err)
	}
	tmpName := tmp.Name()
	fail := func(err error) (int, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		s.logger.Error("save failed: %v", err)
		return 0, NewOperationError("save", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, name); err != nil {
		_ = os.Remove(tmpName)
		s.logger.Error("save failed: %v", err)
		return 0, NewOperationError("save", name, err)
	}

	s.logger.Info("saved %s (%d bytes, version %d)", name, len(data), snap.Version())
	return len(data), nil
}
