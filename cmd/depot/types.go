package main

// CLIResult is the top-level JSON envelope for all read commands.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLIVersion is a JSON-friendly version.
type CLIVersion struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Default  bool   `json:"default"`
	Files    int    `json:"files"`
	CodePath string `json:"code_path,omitempty"`
	DocsPath string `json:"docs_path,omitempty"`
}

// CLIEntry is one symbol of a package.
type CLIEntry struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Hash  string `json:"hash"`
	Link  string `json:"link"`
}

// CLIPackage is a package and its symbols of one kind.
type CLIPackage struct {
	Name    string     `json:"name"`
	Entries []CLIEntry `json:"entries"`
}

// CLITree is the navigation index of one version.
type CLITree struct {
	Version   string       `json:"version"`
	Constants []CLIPackage `json:"constants"`
	Functions []CLIPackage `json:"functions"`
	Classes   []CLIPackage `json:"classes"`
}

// CLIDetail is one file's documentation.
type CLIDetail struct {
	File      string   `json:"file"`
	Package   string   `json:"package"`
	Hash      string   `json:"hash"`
	Summary   string   `json:"summary,omitempty"`
	Markers   int      `json:"markers"`
	Constants []string `json:"constants"`
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
}
