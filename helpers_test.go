package depot

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/fueldepot/depot/internal/store"
	"github.com/stretchr/testify/require"
)

// mapSession is an in-memory SessionContext.
type mapSession map[string]string

func (m mapSession) Get(key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

func (m mapSession) Set(key, value string) { m[key] = value }

func (m mapSession) Delete(key string) { delete(m, key) }

// mapCookies is an in-memory CookieContext.
type mapCookies map[string]string

func (m mapCookies) Cookie(name string) string { return m[name] }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

// blob serializes v as the extraction tool would.
func blob(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// names returns the symbol names of a list.
func names(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Name
	}
	return out
}

// labels returns the entry labels of one package group.
func labels(g PackageGroup) []string {
	out := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		out[i] = e.Label
	}
	return out
}

// packageNames returns the group names of an index.
func packageNames(p PackageIndex) []string {
	out := make([]string, len(p))
	for i, g := range p {
		out[i] = g.Name
	}
	return out
}

func insertVersion(t *testing.T, s *store.Store, major, minor int, branch string, isDefault bool) *Version {
	t.Helper()
	v := &Version{Major: major, Minor: minor, Branch: branch, IsDefault: isDefault}
	_, err := s.InsertVersion(context.Background(), v)
	require.NoError(t, err)
	return v
}

func insertRecord(t *testing.T, s *store.Store, r *DocblockRecord) *DocblockRecord {
	t.Helper()
	_, err := s.InsertDocblock(context.Background(), r)
	require.NoError(t, err)
	return r
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
