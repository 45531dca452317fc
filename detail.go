package depot

import "fmt"

// Detail is the fully decoded record of the selected file.
type Detail struct {
	Record    *DocblockRecord
	Docblock  *Docblock
	Markers   []Marker
	Constants []Symbol
	Functions []Symbol
	Classes   []Symbol
	Selection SelectionParams
}

// Selected reports whether the symbol is the one the request points at.
func (d *Detail) Selected(kind Kind, name string) bool {
	if d == nil || name == "" {
		return false
	}
	switch kind {
	case KindConstant:
		return d.Selection.Constant == name
	case KindFunction:
		return d.Selection.Function == name
	case KindClass:
		return d.Selection.Class == name
	}
	return false
}

// ResolveDetail decodes the first record whose hash equals sel.File. It
// returns nil when no file is selected or none matches.
func ResolveDetail(records []*DocblockRecord, sel SelectionParams) (*Detail, error) {
	if sel.File == "" {
		return nil, nil
	}
	for _, r := range records {
		if r.Hash != sel.File {
			continue
		}
		return decodeDetail(r, sel)
	}
	return nil, nil
}

func decodeDetail(r *DocblockRecord, sel SelectionParams) (*Detail, error) {
	d := &Detail{Record: r, Selection: sel}
	var err error
	if d.Docblock, err = decodeDocblock(r.Docblock); err != nil {
		return nil, fmt.Errorf("detail %s: %w", r.File, err)
	}
	markers, err := decodeList[Marker]("markers", r.Markers)
	if err != nil {
		return nil, fmt.Errorf("detail %s: %w", r.File, err)
	}
	d.Markers = markers.Items()
	if d.Constants, err = decodeSymbols("constants", r.Constants); err != nil {
		return nil, fmt.Errorf("detail %s: %w", r.File, err)
	}
	if d.Functions, err = decodeSymbols("functions", r.Functions); err != nil {
		return nil, fmt.Errorf("detail %s: %w", r.File, err)
	}
	if d.Classes, err = decodeSymbols("classes", r.Classes); err != nil {
		return nil, fmt.Errorf("detail %s: %w", r.File, err)
	}
	return d, nil
}
