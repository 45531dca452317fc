package depot

import (
	"fmt"
	"net/url"
	"strconv"
)

// SelectionParams is what a request asks to see: the version and, optionally,
// a file and a symbol within it. Every field defaults to its zero value.
type SelectionParams struct {
	Version  int64  `json:"version"`
	File     string `json:"file,omitempty"`
	Class    string `json:"class,omitempty"`
	Function string `json:"function,omitempty"`
	Constant string `json:"constant,omitempty"`
}

// ParseSelection pairs a flat route parameter list [k1, v1, k2, v2, ...]
// into SelectionParams. Unknown keys are ignored; a repeated key keeps the
// last value.
func ParseSelection(params []string) (SelectionParams, error) {
	var sel SelectionParams
	if len(params)%2 != 0 {
		return sel, fmt.Errorf("parse selection: %w: got %d values", ErrOddParams, len(params))
	}
	for i := 0; i < len(params); i += 2 {
		key, value := params[i], params[i+1]
		switch key {
		case "version":
			if value == "" {
				sel.Version = 0
				continue
			}
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil || v < 0 {
				return sel, fmt.Errorf("parse selection: %w: %q", ErrBadVersion, value)
			}
			sel.Version = v
		case "file":
			sel.File = value
		case "class":
			sel.Class = value
		case "function":
			sel.Function = value
		case "constant":
			sel.Constant = value
		}
	}
	return sel, nil
}

// Path renders the selection back into its route.
func (s SelectionParams) Path() string {
	p := VersionPath(s.Version)
	switch {
	case s.Class != "":
		p += "/class/" + url.PathEscape(s.Class)
	case s.Function != "":
		p += "/function/" + url.PathEscape(s.Function)
	case s.Constant != "":
		p += "/constant/" + url.PathEscape(s.Constant)
	}
	if s.File != "" {
		p += "/file/" + url.PathEscape(s.File)
	}
	return p
}

// symbolPath is the route of one symbol within one file.
func symbolPath(version int64, kind Kind, name, hash string) string {
	return VersionPath(version) + "/" + string(kind) + "/" + url.PathEscape(name) + "/file/" + url.PathEscape(hash)
}
