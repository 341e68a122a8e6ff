package checks

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/ftahirops/rebootcheck/model"
	"github.com/ftahirops/rebootcheck/pkgdb"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeLookup serves records from memory and counts lookups.
type fakeLookup struct {
	records map[string]model.PackageRecord
	errs    map[string]error
	calls   []string
}

func (f *fakeLookup) Get(name string) (model.PackageRecord, error) {
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return model.PackageRecord{}, err
	}
	rec, ok := f.records[name]
	if !ok {
		return model.PackageRecord{}, fmt.Errorf("%s: %w", name, pkgdb.ErrNotFound)
	}
	return rec, nil
}

func record(name, version string, installed *time.Time) model.PackageRecord {
	return model.PackageRecord{Name: name, Version: version, InstallDate: installed}
}

func at(t time.Time) *time.Time { return &t }
