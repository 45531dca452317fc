package store

import "fmt"

// Version is one documented framework release line. Versions are maintained
// by the administration side and are read-only here.
type Version struct {
	ID        int64
	Major     int
	Minor     int
	Branch    string
	IsDefault bool
	CodePath  string
	DocsPath  string
}

// Label renders the version the way the version dropdown shows it.
func (v Version) Label() string {
	return fmt.Sprintf("%d.%d/%s", v.Major, v.Minor, v.Branch)
}

// DocblockRecord is one analyzed source file of a version. Docblock, Markers,
// Constants, Functions and Classes hold serialized blobs written by the
// offline extraction tool.
type DocblockRecord struct {
	ID        int64
	VersionID int64
	Package   string
	File      string
	Hash      string
	Docblock  string
	Markers   string
	Constants string
	Functions string
	Classes   string
}
