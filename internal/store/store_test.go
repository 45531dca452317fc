package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

// insertTestVersion inserts a version and returns it with ID set.
func insertTestVersion(t *testing.T, s *Store, major, minor int, branch string, isDefault bool) *Version {
	t.Helper()
	v := &Version{Major: major, Minor: minor, Branch: branch, IsDefault: isDefault}
	id, err := s.InsertVersion(context.Background(), v)
	require.NoError(t, err)
	require.Positive(t, id)
	return v
}

// =============================================================================
// Schema & Lifecycle
// =============================================================================

func TestMigrate_AllTablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, table := range []string{"versions", "docblox"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestMigrate_WALMode(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	var mode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()
	_, err := Open("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

// =============================================================================
// Versions
// =============================================================================

func TestVersions_OrderedByMajorMinorBranch(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	insertTestVersion(t, s, 1, 2, "master", false)
	insertTestVersion(t, s, 1, 1, "develop", false)
	insertTestVersion(t, s, 1, 1, "1.1/master", true)
	insertTestVersion(t, s, 0, 9, "master", false)

	got, err := s.Versions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	labels := make([]string, len(got))
	for i, v := range got {
		labels[i] = v.Label()
	}
	assert.Equal(t, []string{"0.9/master", "1.1/1.1/master", "1.1/develop", "1.2/master"}, labels)
	assert.True(t, got[1].IsDefault)
}

func TestVersions_Empty(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	got, err := s.Versions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

// =============================================================================
// Docblocks
// =============================================================================

func TestDocblocks_FilteredAndOrdered(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	v1 := insertTestVersion(t, s, 1, 0, "master", true)
	v2 := insertTestVersion(t, s, 1, 1, "master", false)

	for _, r := range []*DocblockRecord{
		{VersionID: v1.ID, Package: "Fuel\\Core", File: "classes/uri.php", Hash: "h3"},
		{VersionID: v1.ID, Package: "", File: "bootstrap.php", Hash: "h1"},
		{VersionID: v1.ID, Package: "Fuel\\Core", File: "classes/arr.php", Hash: "h2"},
		{VersionID: v2.ID, Package: "Fuel\\Core", File: "classes/arr.php", Hash: "h4"},
	} {
		_, err := s.InsertDocblock(ctx, r)
		require.NoError(t, err)
	}

	got, err := s.DocblocksByVersion(ctx, v1.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "h1", got[0].Hash)
	assert.Equal(t, "h2", got[1].Hash)
	assert.Equal(t, "h3", got[2].Hash)

	n, err := s.CountDocblocks(ctx, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInsertDocblock_DefaultsEmptySequences(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	v := insertTestVersion(t, s, 1, 0, "master", true)

	_, err := s.InsertDocblock(ctx, &DocblockRecord{
		VersionID: v.ID, File: "a.php", Hash: "h",
		Functions: `[{"name":"e"}]`,
	})
	require.NoError(t, err)

	got, err := s.DocblocksByVersion(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "[]", got[0].Constants)
	assert.Equal(t, "[]", got[0].Classes)
	assert.Equal(t, "[]", got[0].Markers)
	assert.Equal(t, `[{"name":"e"}]`, got[0].Functions)
}

func TestRebind(t *testing.T) {
	t.Parallel()
	sq := &Store{driver: DriverSQLite}
	pg := &Store{driver: DriverPostgres}
	q := "SELECT * FROM docblox WHERE version_id = ? AND hash = ?"
	assert.Equal(t, q, sq.rebind(q))
	assert.Equal(t, "SELECT * FROM docblox WHERE version_id = $1 AND hash = $2", pg.rebind(q))
}
