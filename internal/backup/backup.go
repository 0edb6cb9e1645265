package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/nimasrn/debt-ledger/pkg/prom"
)

const (
	DefaultMaxBackups = 30

	filePrefix       = "socongno_backup_"
	fileExt          = ".db"
	preRestorePrefix = "pre_restore_"
	timestampLayout  = "20060102_150405"
)

var (
	ErrNoDatabase       = errors.New("database file does not exist")
	ErrArtifactNotFound = errors.New("backup file does not exist")
)

type Config struct {
	DatabasePath string
	Dir          string
	// MaxBackups is how many snapshots are kept; 0 means DefaultMaxBackups.
	MaxBackups int
}

// Artifact is one snapshot file in the backup directory.
type Artifact struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	TakenAt time.Time `json:"taken_at"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

type Service struct {
	cfg Config
	now func() time.Time
}

type Option func(*Service)

// WithClock replaces the time source used to name snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultMaxBackups
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SnapshotNow copies the database file into the backup directory and prunes
// the oldest snapshots beyond the retention limit.
func (s *Service) SnapshotNow(ctx context.Context) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.cfg.DatabasePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			prom.IncBackup("skipped")
			return nil, ErrNoDatabase
		}
		return nil, err
	}

	name := filePrefix + s.now().Format(timestampLayout) + fileExt
	dst := filepath.Join(s.cfg.Dir, name)
	if err := copyFile(s.cfg.DatabasePath, dst); err != nil {
		prom.IncBackup("failed")
		return nil, fmt.Errorf("snapshot database: %w", err)
	}
	logger.Info("backup created", "path", dst)
	prom.IncBackup("ok")

	if err := s.prune(); err != nil {
		logger.Warn("failed to prune old backups", "error", err)
	}
	return s.artifact(dst)
}

// List returns the snapshots, newest first.
func (s *Service) List() ([]Artifact, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSnapshotName(e.Name()) {
			continue
		}
		a, err := s.artifact(filepath.Join(s.cfg.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *a)
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		if !artifacts[i].TakenAt.Equal(artifacts[j].TakenAt) {
			return artifacts[i].TakenAt.After(artifacts[j].TakenAt)
		}
		return artifacts[i].ModTime.After(artifacts[j].ModTime)
	})
	return artifacts, nil
}

// Find resolves a snapshot by file name inside the backup directory.
func (s *Service) Find(name string) (*Artifact, error) {
	path := filepath.Join(s.cfg.Dir, filepath.Base(name))
	a, err := s.artifact(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrArtifactNotFound
	}
	return a, err
}

// Restore overwrites the database file with the artifact. The current
// database, if any, is first copied aside as pre_restore_<artifact name>.
// The database must not be open while restoring.
func (s *Service) Restore(ctx context.Context, artifact Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(artifact.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrArtifactNotFound
		}
		return err
	}

	if _, err := os.Stat(s.cfg.DatabasePath); err == nil {
		safety := filepath.Join(s.cfg.Dir, preRestorePrefix+artifact.Name)
		if err := copyFile(s.cfg.DatabasePath, safety); err != nil {
			return fmt.Errorf("save current database: %w", err)
		}
		logger.Info("current database saved before restore", "path", safety)
	}

	if err := copyFile(artifact.Path, s.cfg.DatabasePath); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	logger.Info("database restored", "from", artifact.Path)
	return nil
}

// AutoBackupIfNeeded takes at most one snapshot per calendar day. It returns
// nil when today's snapshot already exists.
func (s *Service) AutoBackupIfNeeded(ctx context.Context) (*Artifact, error) {
	artifacts, err := s.List()
	if err != nil {
		return nil, err
	}
	today := s.now().Format("20060102")
	for _, a := range artifacts {
		if a.TakenAt.Format("20060102") == today {
			return nil, nil
		}
	}
	return s.SnapshotNow(ctx)
}

func (s *Service) prune() error {
	artifacts, err := s.List()
	if err != nil {
		return err
	}
	if len(artifacts) <= s.cfg.MaxBackups {
		return nil
	}
	for _, a := range artifacts[s.cfg.MaxBackups:] {
		if err := os.Remove(a.Path); err != nil {
			return err
		}
		logger.Info("old backup removed", "path", a.Path)
	}
	return nil
}

func (s *Service) artifact(path string) (*Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	takenAt, ok := parseTimestamp(name)
	if !ok {
		takenAt = info.ModTime()
	}
	return &Artifact{
		Name:    name,
		Path:    path,
		TakenAt: takenAt,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

func isSnapshotName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExt)
}

func parseTimestamp(name string) (time.Time, bool) {
	if !isSnapshotName(name) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileExt)
	t, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
