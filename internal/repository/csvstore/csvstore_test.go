package csvstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/datagen"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, dir string, autosave bool) *Store {
	t.Helper()
	s := New(dir, datagen.DefaultSeed, autosave, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func TestLoadOrGenerateFallsBackToDemoData(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir, false)

	ds := s.LoadOrGenerate()
	require.NotNil(t, ds)
	assert.Len(t, ds.Inventory, 20)
	assert.Len(t, ds.Machines, 8)
	assert.Same(t, ds, s.Dataset())

	// Autosave is off, so the fallback does not write snapshot files.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir, true)

	generated := s.LoadOrGenerate()
	for _, name := range []string{inventoryFile, machineryFile, demandFile, operationsFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	reloaded := newTestStore(t, dir, false).LoadOrGenerate()

	require.Len(t, reloaded.Inventory, len(generated.Inventory))
	for i, want := range generated.Inventory {
		got := reloaded.Inventory[i]
		assert.Equal(t, want.ProductID, got.ProductID)
		assert.Equal(t, want.ProductName, got.ProductName)
		assert.Equal(t, want.CurrentStock, got.CurrentStock)
		assert.Equal(t, want.SafetyStock, got.SafetyStock)
		assert.Equal(t, want.Unit, got.Unit)
		assert.Equal(t, want.LeadTimeDays, got.LeadTimeDays)
		assert.True(t, want.UnitCost.Equal(got.UnitCost),
			"unit cost mismatch for %s: %s != %s", want.ProductName, want.UnitCost, got.UnitCost)
	}

	assert.Equal(t, generated.Machines, reloaded.Machines)
	assert.Equal(t, generated.Demand, reloaded.Demand)
	assert.Equal(t, generated.Operations, reloaded.Operations)
}

func TestLoadOrGenerateRejectsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	first := newTestStore(t, dir, true)
	first.LoadOrGenerate()

	// Break the inventory header; the loader must fall back to generating
	// instead of serving a partial dataset.
	path := filepath.Join(dir, inventoryFile)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := strings.Replace(string(raw), "product_id", "productid", 1)
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o644))

	ds := newTestStore(t, dir, false).LoadOrGenerate()
	require.NotNil(t, ds)
	assert.Len(t, ds.Inventory, 20)
	assert.Len(t, ds.Demand, 20*180)
}

func TestRefreshSwapsDatasetAtomically(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir, false)

	before := s.LoadOrGenerate()
	after := s.Refresh(7)

	assert.NotSame(t, before, after)
	assert.Same(t, after, s.Dataset())
	assert.Equal(t, int64(7), after.Seed)
	assert.NotEqual(t, before.Inventory, after.Inventory)

	// Seed zero reuses the configured seed, reproducing the original data.
	again := s.Refresh(0)
	assert.Equal(t, int64(datagen.DefaultSeed), again.Seed)
	assert.Equal(t, before.Inventory, again.Inventory)
}

func TestSaveWithoutDatasetFails(t *testing.T) {
	s := newTestStore(t, t.TempDir(), false)
	assert.ErrorIs(t, s.Save(), ErrMissingDataset)
}
