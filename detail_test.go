package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailRecords(t *testing.T) []*DocblockRecord {
	t.Helper()
	return []*DocblockRecord{
		{
			ID: 1, Package: "Fuel\\Core", File: "classes/arr.php", Hash: "a1",
			Docblock:  blob(t, Docblock{Short: "Array helpers", Tags: []Tag{{Name: "package", Description: "Fuel"}}}),
			Markers:   blob(t, Marker{Type: "todo", Line: 12, Message: "speed up"}),
			Constants: EmptySequence,
			Functions: EmptySequence,
			Classes:   blob(t, []Symbol{{Name: "Arr", Methods: []Symbol{{Name: "get"}, {Name: "set"}}}}),
		},
		{
			ID: 2, Package: "Fuel\\Core", File: "classes/arr_copy.php", Hash: "a1",
			Classes: blob(t, []Symbol{{Name: "Shadow"}}),
		},
		{
			ID: 3, Package: "", File: "base.php", Hash: "b1",
			Functions: blob(t, Symbol{Name: "e"}),
		},
	}
}

func TestResolveDetail_NoFileSelected(t *testing.T) {
	d, err := ResolveDetail(detailRecords(t), SelectionParams{Version: 1})
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestResolveDetail_NoMatch(t *testing.T) {
	d, err := ResolveDetail(detailRecords(t), SelectionParams{Version: 1, File: "zz"})
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestResolveDetail_FirstMatchWins(t *testing.T) {
	d, err := ResolveDetail(detailRecords(t), SelectionParams{Version: 1, File: "a1", Class: "Arr"})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, int64(1), d.Record.ID)
	assert.Equal(t, []string{"Arr"}, names(d.Classes))
	assert.Equal(t, []string{"get", "set"}, names(d.Classes[0].Methods))
	require.NotNil(t, d.Docblock)
	assert.Equal(t, "Array helpers", d.Docblock.Short)
	require.Len(t, d.Markers, 1)
	assert.Equal(t, "todo", d.Markers[0].Type)
	assert.Empty(t, d.Constants)
	assert.Empty(t, d.Functions)
	assert.True(t, d.Selected(KindClass, "Arr"))
	assert.False(t, d.Selected(KindFunction, "Arr"))
}

func TestResolveDetail_BareDescriptorNormalized(t *testing.T) {
	d, err := ResolveDetail(detailRecords(t), SelectionParams{File: "b1", Function: "e"})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, []string{"e"}, names(d.Functions))
	assert.Nil(t, d.Docblock)
	assert.True(t, d.Selected(KindFunction, "e"))
}

func TestResolveDetail_CorruptDocblock(t *testing.T) {
	records := []*DocblockRecord{{File: "x.php", Hash: "x", Docblock: "{"}}
	_, err := ResolveDetail(records, SelectionParams{File: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptBlob)
}

func TestDetail_SelectedOnNil(t *testing.T) {
	var d *Detail
	assert.False(t, d.Selected(KindClass, "Arr"))
}
