package depot

import (
	"strconv"
)

// SessionVersionKey is the session key remembering the visitor's version.
const SessionVersionKey = "version"

// LandingPath is the version-picker entry page.
const LandingPath = "/api"

// VersionPath is the route showing a version.
func VersionPath(id int64) string {
	return LandingPath + "/version/" + strconv.FormatInt(id, 10)
}

// SessionContext is the per-visitor session store.
type SessionContext interface {
	Get(key, def string) string
	Set(key, value string)
	Delete(key string)
}

// CookieContext gives read access to the request cookies.
type CookieContext interface {
	Cookie(name string) string
}

// ResolutionKind tags the outcome of ResolveVersion.
type ResolutionKind int

const (
	Resolved ResolutionKind = iota
	Redirect
	Failed
)

func (k ResolutionKind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Redirect:
		return "redirect"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Resolution is the result of ResolveVersion. Target is set for Redirect,
// Version for Resolved and Err for Failed.
type Resolution struct {
	Kind    ResolutionKind
	Target  string
	Version *Version
	Err     error
}

// ResolveVersion picks the version for a request. versions must be sorted
// ascending by major, minor, branch. A zero requested id means none was
// asked for, in which case the session, then the default-flagged version,
// then the last version of the scan are redirected to.
//
// Resolving a requested version stores it in the session. An unknown
// requested version is dropped from the session and redirected to the
// landing page.
func ResolveVersion(versions []*Version, requested int64, sess SessionContext) Resolution {
	if len(versions) == 0 {
		return Resolution{Kind: Failed, Err: ErrNoVersions}
	}

	if requested != 0 {
		for _, v := range versions {
			if v.ID == requested {
				sess.Set(SessionVersionKey, strconv.FormatInt(v.ID, 10))
				return Resolution{Kind: Resolved, Version: v}
			}
		}
		sess.Delete(SessionVersionKey)
		return Resolution{Kind: Redirect, Target: LandingPath}
	}

	if id := sessionVersion(sess); id != 0 {
		return Resolution{Kind: Redirect, Target: VersionPath(id)}
	}

	// The fallback is the last record the scan visited, not an independently
	// computed maximum.
	var last *Version
	for _, v := range versions {
		if v.IsDefault {
			return Resolution{Kind: Redirect, Target: VersionPath(v.ID)}
		}
		last = v
	}
	if last != nil {
		return Resolution{Kind: Redirect, Target: VersionPath(last.ID)}
	}
	return Resolution{Kind: Failed, Err: ErrNoVersions}
}

func sessionVersion(sess SessionContext) int64 {
	raw := sess.Get(SessionVersionKey, "")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
