// Package pkgdb reads installed package records from the pacman local
// database.
package pkgdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/model"
	"github.com/ftahirops/rebootcheck/util"
)

// DefaultDir is the pacman local database.
const DefaultDir = "/var/lib/pacman/local"

// ErrNotFound is returned when a package is not installed.
var ErrNotFound = errors.New("package not found")

const descFile = "desc"

// DB is a read-only handle on the local database. Entries are indexed by name
// on Open and their desc files are read on demand.
type DB struct {
	dir    string
	index  map[string]string
	logger *zap.Logger
}

// Open indexes the database directory.
func Open(dir string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("open package database: %w", err)
	}

	index := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name, ok := entryName(e.Name())
		if !ok {
			logger.Debug("skipping unrecognized database entry", zap.String("entry", e.Name()))
			continue
		}
		index[name] = filepath.Join(dir, e.Name())
	}
	logger.Debug("package database opened", zap.String("dir", dir), zap.Int("packages", len(index)))

	return &DB{dir: dir, index: index, logger: logger}, nil
}

// Dir returns the database directory.
func (db *DB) Dir() string { return db.dir }

// Len returns the number of indexed packages.
func (db *DB) Len() int { return len(db.index) }

// Get returns the record of an installed package.
func (db *DB) Get(name string) (model.PackageRecord, error) {
	path, ok := db.index[name]
	if !ok {
		return model.PackageRecord{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	sections, err := util.ParseSectionFile(filepath.Join(path, descFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.PackageRecord{}, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return model.PackageRecord{}, fmt.Errorf("read %s: %w", name, err)
	}

	if got := util.SectionValue(sections, "NAME"); got != name {
		return model.PackageRecord{}, fmt.Errorf("%s: database entry names %q", path, got)
	}
	rec := model.PackageRecord{
		Name:    name,
		Version: util.SectionValue(sections, "VERSION"),
	}
	if rec.Version == "" {
		return model.PackageRecord{}, fmt.Errorf("%s: database entry has no version", name)
	}

	if raw := util.SectionValue(sections, "INSTALLDATE"); raw != "" {
		secs, err := util.ParseInt64(raw)
		if err != nil {
			db.logger.Warn("ignoring unparseable install date",
				zap.String("package", name), zap.String("value", raw))
		} else {
			ts := time.Unix(secs, 0)
			rec.InstallDate = &ts
		}
	}
	return rec, nil
}

// entryName strips "-pkgver-pkgrel" from a database directory name.
func entryName(dirName string) (string, bool) {
	rel := strings.LastIndex(dirName, "-")
	if rel <= 0 {
		return "", false
	}
	ver := strings.LastIndex(dirName[:rel], "-")
	if ver <= 0 {
		return "", false
	}
	return dirName[:ver], true
}
