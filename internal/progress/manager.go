package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Save file names inside the data directory.
const (
	FileName     = "gitquest_progress.dat"
	BackupSuffix = ".backup"
	TempSuffix   = ".tmp"
)

// Manager reads and writes the session save file. Writes go to a temporary
// file that is renamed over the primary, so the primary is always either
// the previous or the new complete version. The previous version is kept
// as a backup and used when the primary cannot be read.
type Manager struct {
	Path       string
	BackupPath string
	TempPath   string

	now func() time.Time
}

// NewManager returns a Manager for the save files in dir.
func NewManager(dir string) *Manager {
	p := filepath.Join(dir, FileName)
	return &Manager{
		Path:       p,
		BackupPath: p + BackupSuffix,
		TempPath:   p + TempSuffix,
		now:        time.Now,
	}
}

// Save writes s and reports whether it succeeded. The session's last-save
// timestamp is updated to the time of the write. Failures are logged.
func (m *Manager) Save(s *Session) bool {
	if s == nil {
		slog.Warn("save progress: nil session")
		return false
	}

	prev := s.lastSaveTimestamp
	s.lastSaveTimestamp = m.now().Format(TimestampLayout)
	if err := m.save(encode(s)); err != nil {
		s.lastSaveTimestamp = prev
		slog.Warn("save progress", "path", m.Path, "error", err)
		return false
	}
	return true
}

func (m *Manager) save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(m.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	if err := copyFile(m.Path, m.BackupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("backup progress", "path", m.BackupPath, "error", err)
	}

	if err := writeSynced(m.TempPath, data); err != nil {
		_ = os.Remove(m.TempPath)
		return err
	}
	if err := os.Rename(m.TempPath, m.Path); err != nil {
		_ = os.Remove(m.TempPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Load reads the saved session, falling back to the backup when the primary
// is missing or unreadable. It reports false when neither yields a session.
func (m *Manager) Load() (*Session, bool) {
	s, err := loadFile(m.Path)
	if err == nil {
		return s, true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load progress, trying backup", "path", m.Path, "error", err)
	}

	s, err = loadFile(m.BackupPath)
	if err == nil {
		return s, true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load progress backup", "path", m.BackupPath, "error", err)
	}
	return nil, false
}

// Exists reports whether a primary or backup save file is present.
func (m *Manager) Exists() bool {
	for _, p := range []string{m.Path, m.BackupPath} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// Delete removes the save file, its backup and any leftover temporary files.
func (m *Manager) Delete() error {
	var errs []error
	for _, p := range []string{m.Path, m.BackupPath, m.TempPath, m.BackupPath + TempSuffix} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadFile(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}

// copyFile replaces dst with a copy of src through a temporary file, so a
// failed copy leaves the previous dst intact.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	tmp := dst + TempSuffix
	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename backup: %w", err)
	}
	return nil
}
