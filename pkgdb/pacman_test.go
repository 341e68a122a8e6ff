package pkgdb

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, dir, name, version, installDate string) {
	t.Helper()
	entry := filepath.Join(dir, name+"-"+version)
	require.NoError(t, os.MkdirAll(entry, 0o755))
	desc := fmt.Sprintf("%%NAME%%\n%s\n\n%%VERSION%%\n%s\n\n", name, version)
	if installDate != "" {
		desc += fmt.Sprintf("%%INSTALLDATE%%\n%s\n\n", installDate)
	}
	require.NoError(t, os.WriteFile(filepath.Join(entry, descFile), []byte(desc), 0o644))
}

func TestOpenAndGet(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "linux", "6.7.arch1-1", "1704873600")
	writeEntry(t, dir, "linux-zen", "6.7.1.zen1-1", "1704877200")
	writeEntry(t, dir, "xorg-server", "21.1.11-1", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ALPM_DB_VERSION"), []byte("9\n"), 0o644))

	db, err := Open(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())
	assert.Equal(t, dir, db.Dir())

	rec, err := db.Get("linux")
	require.NoError(t, err)
	assert.Equal(t, "linux", rec.Name)
	assert.Equal(t, "6.7.arch1-1", rec.Version)
	require.NotNil(t, rec.InstallDate)
	assert.True(t, time.Unix(1704873600, 0).Equal(*rec.InstallDate))

	rec, err = db.Get("linux-zen")
	require.NoError(t, err)
	assert.Equal(t, "6.7.1.zen1-1", rec.Version)

	rec, err = db.Get("xorg-server")
	require.NoError(t, err)
	assert.Nil(t, rec.InstallDate)
}

func TestGet_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "linux", "6.7.arch1-1", "1704873600")

	db, err := Open(dir, nil)
	require.NoError(t, err)

	_, err = db.Get("linux-lts")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.Remove(filepath.Join(dir, "linux-6.7.arch1-1", descFile)))
	_, err = db.Get("linux")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_BadEntries(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "systemd", "255.2-1", "not-a-number")

	entry := filepath.Join(dir, "mismatch-1.0-1")
	require.NoError(t, os.MkdirAll(entry, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(entry, descFile), []byte("%NAME%\nother\n"), 0o644))

	entry = filepath.Join(dir, "noversion-1.0-1")
	require.NoError(t, os.MkdirAll(entry, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(entry, descFile), []byte("%NAME%\nnoversion\n"), 0o644))

	db, err := Open(dir, nil)
	require.NoError(t, err)

	rec, err := db.Get("systemd")
	require.NoError(t, err)
	assert.Nil(t, rec.InstallDate, "unparseable install date is treated as unknown")

	_, err = db.Get("mismatch")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = db.Get("noversion")
	assert.Error(t, err)
}

func TestOpen_MissingDir(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		dir    string
		want   string
		wantOK bool
	}{
		{"linux-6.7.arch1-1", "linux", true},
		{"linux-zen-6.7.1.zen1-1", "linux-zen", true},
		{"lib32-glibc-2.39-1", "lib32-glibc", true},
		{"ALPM_DB_VERSION", "", false},
		{"only-one", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			got, ok := entryName(tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
