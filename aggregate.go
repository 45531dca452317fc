package depot

import (
	"fmt"
	"sort"
	"strings"
)

// UndefinedPackage labels records that declare no package.
const UndefinedPackage = "Undefined"

// NamespaceSeparator separates PHP namespace segments.
const NamespaceSeparator = `\`

// Kind names a symbol kind as it appears in routes.
type Kind string

const (
	KindConstant Kind = "constant"
	KindFunction Kind = "function"
	KindClass    Kind = "class"
)

// Entry is one navigation item. Key orders entries within a package.
type Entry struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Hash    string `json:"hash"`
	Link    string `json:"link"`
	Current bool   `json:"current,omitempty"`
}

// PackageGroup holds the entries of one package, sorted by Key.
type PackageGroup struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// PackageIndex is a list of package groups sorted by name.
type PackageIndex []PackageGroup

// Len returns the total number of entries across all packages.
func (p PackageIndex) Len() int {
	n := 0
	for _, g := range p {
		n += len(g.Entries)
	}
	return n
}

// Index is the aggregated navigation data of one version.
type Index struct {
	Constants PackageIndex `json:"constants"`
	Functions PackageIndex `json:"functions"`
	Classes   PackageIndex `json:"classes"`
}

// packageEntries collects entries per package, keyed so a repeated key
// replaces the earlier entry.
type packageEntries map[string]map[string]Entry

// add merges entries into pkg. A package only appears once it has an entry,
// so a field decoding to nothing matches a skipped empty sequence.
func (p packageEntries) add(pkg string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	m, ok := p[pkg]
	if !ok {
		m = make(map[string]Entry, len(entries))
		p[pkg] = m
	}
	for _, e := range entries {
		m[e.Key] = e
	}
}

// sorted orders packages by name and entries by key.
func (p packageEntries) sorted() PackageIndex {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	idx := make(PackageIndex, 0, len(names))
	for _, name := range names {
		m := p[name]
		entries := make([]Entry, 0, len(m))
		for _, e := range m {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		idx = append(idx, PackageGroup{Name: name, Entries: entries})
	}
	return idx
}

// Aggregate groups the constants, functions and classes of records by
// package. records should be the full record set of sel.Version; the result
// does not depend on their order.
func Aggregate(records []*DocblockRecord, sel SelectionParams) (*Index, error) {
	constants := packageEntries{}
	functions := packageEntries{}
	classes := packageEntries{}

	for _, r := range records {
		pkg := packageName(r.Package)

		if !isEmptySequence(r.Constants) {
			entries, err := symbolEntries(r, KindConstant, r.Constants, sel.Version, sel.File == r.Hash, sel.Constant)
			if err != nil {
				return nil, err
			}
			constants.add(pkg, entries)
		}

		if !isEmptySequence(r.Functions) {
			entries, err := symbolEntries(r, KindFunction, r.Functions, sel.Version, sel.File == r.Hash, sel.Function)
			if err != nil {
				return nil, err
			}
			functions.add(pkg, entries)
		}

		if !isEmptySequence(r.Classes) {
			entries, err := classEntries(r, sel)
			if err != nil {
				return nil, err
			}
			classes.add(pkg, entries)
		}
	}

	return &Index{
		Constants: constants.sorted(),
		Functions: functions.sorted(),
		Classes:   classes.sorted(),
	}, nil
}

func packageName(pkg string) string {
	if pkg == "" {
		return UndefinedPackage
	}
	return pkg
}

// symbolEntries builds constant or function entries. The name plus the file
// hash keeps same-named symbols of different files apart.
func symbolEntries(r *DocblockRecord, kind Kind, raw string, version int64, fileSelected bool, selected string) ([]Entry, error) {
	symbols, err := decodeSymbols(string(kind)+"s", raw)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", r.File, err)
	}
	entries := make([]Entry, 0, len(symbols))
	for _, s := range symbols {
		entries = append(entries, Entry{
			Key:     s.Name + r.Hash,
			Label:   s.Name,
			Name:    s.Name,
			Kind:    kind,
			Hash:    r.Hash,
			Link:    symbolPath(version, kind, s.Name, r.Hash),
			Current: fileSelected && selected == s.Name,
		})
	}
	return entries, nil
}

// classEntries builds class entries labelled with their namespace relative
// to the class package. The space before the hash sorts a bare name ahead of
// longer names sharing its prefix.
func classEntries(r *DocblockRecord, sel SelectionParams) ([]Entry, error) {
	classes, err := decodeSymbols("classes", r.Classes)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", r.File, err)
	}
	entries := make([]Entry, 0, len(classes))
	for _, c := range classes {
		if c.IsZero() {
			continue
		}
		label := RelativeNamespace(c.Namespace, c.Package) + c.Name
		entries = append(entries, Entry{
			Key:     label + " " + r.Hash,
			Label:   label,
			Name:    c.Name,
			Kind:    KindClass,
			Hash:    r.Hash,
			Link:    symbolPath(sel.Version, KindClass, c.Name, r.Hash),
			Current: sel.File == r.Hash && sel.Class == c.Name,
		})
	}
	return entries, nil
}

// RelativeNamespace returns the part of namespace below pkg, with a trailing
// separator, when namespace lies inside pkg. Otherwise it returns "".
func RelativeNamespace(namespace, pkg string) string {
	if namespace == "" || pkg == "" || namespace == pkg || !strings.HasPrefix(namespace, pkg) {
		return ""
	}
	rest := ""
	if len(namespace) > len(pkg)+1 {
		rest = namespace[len(pkg)+1:]
	}
	return strings.TrimSuffix(rest, NamespaceSeparator) + NamespaceSeparator
}
