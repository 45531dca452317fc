package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVersions() []*Version {
	return []*Version{
		{ID: 4, Major: 1, Minor: 0, Branch: "master"},
		{ID: 2, Major: 1, Minor: 1, Branch: "develop"},
		{ID: 7, Major: 1, Minor: 1, Branch: "master"},
	}
}

func TestResolveVersion_NoVersionsFails(t *testing.T) {
	for _, requested := range []int64{0, 3} {
		sess := mapSession{SessionVersionKey: "9"}
		res := ResolveVersion(nil, requested, sess)
		assert.Equal(t, Failed, res.Kind)
		assert.ErrorIs(t, res.Err, ErrNoVersions)
		assert.Empty(t, res.Target)
	}
}

func TestResolveVersion_KnownRequestedIsStored(t *testing.T) {
	sess := mapSession{}
	res := ResolveVersion(testVersions(), 2, sess)
	require.Equal(t, Resolved, res.Kind)
	assert.Equal(t, int64(2), res.Version.ID)
	assert.Equal(t, "2", sess[SessionVersionKey])
}

func TestResolveVersion_UnknownRequestedGoesToLanding(t *testing.T) {
	sess := mapSession{SessionVersionKey: "99"}
	res := ResolveVersion(testVersions(), 99, sess)
	assert.Equal(t, Redirect, res.Kind)
	assert.Equal(t, LandingPath, res.Target)
	_, kept := sess[SessionVersionKey]
	assert.False(t, kept, "stale session version should be dropped")
}

func TestResolveVersion_SessionWins(t *testing.T) {
	versions := testVersions()
	versions[0].IsDefault = true
	res := ResolveVersion(versions, 0, mapSession{SessionVersionKey: "7"})
	assert.Equal(t, Redirect, res.Kind)
	assert.Equal(t, "/api/version/7", res.Target)
}

func TestResolveVersion_DefaultFlagged(t *testing.T) {
	versions := testVersions()
	versions[1].IsDefault = true
	res := ResolveVersion(versions, 0, mapSession{})
	assert.Equal(t, Redirect, res.Kind)
	assert.Equal(t, VersionPath(2), res.Target)
}

func TestResolveVersion_FirstDefaultInScanOrder(t *testing.T) {
	versions := testVersions()
	versions[1].IsDefault = true
	versions[2].IsDefault = true
	res := ResolveVersion(versions, 0, mapSession{})
	assert.Equal(t, VersionPath(2), res.Target)
}

func TestResolveVersion_FallsBackToLastScanned(t *testing.T) {
	// The last record in scan order is used even though a lower id exists.
	res := ResolveVersion(testVersions(), 0, mapSession{})
	assert.Equal(t, Redirect, res.Kind)
	assert.Equal(t, VersionPath(7), res.Target)

	dup := append(testVersions(), &Version{ID: 3, Major: 1, Minor: 1, Branch: "master"})
	res = ResolveVersion(dup, 0, mapSession{})
	assert.Equal(t, VersionPath(3), res.Target)
}

func TestResolveVersion_IgnoresUnusableSession(t *testing.T) {
	for _, raw := range []string{"", "0", "abc"} {
		res := ResolveVersion(testVersions(), 0, mapSession{SessionVersionKey: raw})
		assert.Equal(t, VersionPath(7), res.Target, "session value %q", raw)
	}
}

func TestResolutionKind_String(t *testing.T) {
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", ResolutionKind(42).String())
}
