package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(name, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseHeaderAliases(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Component Name", "Quantity", "Floor_Number", "Position X", "Serial", "Health Score", "Notes"},
		[]interface{}{"Galaxy VL", 2, 3, 1.5, "UPS-01", 85, "near dock"},
	)

	rows, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.Number())
	assert.Equal(t, "Galaxy VL", row.String(ColComponentName))
	assert.Equal(t, "UPS-01", row.String(ColSerial))
	assert.Equal(t, "near dock", row.String(ColNotes))

	qty, err := row.Int(ColQuantity, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	floor, err := row.Int(ColFloorNumber, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, floor)

	x, err := row.Float(ColPositionX)
	require.NoError(t, err)
	require.NotNil(t, x)
	assert.Equal(t, 1.5, *x)

	health, err := row.Int(ColHealthScore, 100)
	require.NoError(t, err)
	assert.Equal(t, 85, health)
}

func TestParseCamelCaseAlias(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"ComponentName"},
		[]interface{}{"NetShelter"},
	)

	rows, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "NetShelter", rows[0].String(ColComponentName))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(bytes.NewBufferString("this is not a workbook"))
	assert.Error(t, err)
}

func TestRowDefaultsAndErrors(t *testing.T) {
	row := NewRow(0, map[string]string{
		"Component Name": "Galaxy VL",
		"Quantity":       "abc",
		"Position X":     "not-a-float",
	})

	// Absent columns fall back to defaults, blank floats are unset.
	floor, err := row.Int(ColFloorNumber, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, floor)

	y, err := row.Float(ColPositionY)
	require.NoError(t, err)
	assert.Nil(t, y)

	_, err = row.Int(ColQuantity, 1)
	assert.Error(t, err)

	_, err = row.Float(ColPositionX)
	assert.Error(t, err)
}

func TestRowFractionalQuantityTruncates(t *testing.T) {
	row := NewRow(0, map[string]string{"Quantity": "2.7"})
	qty, err := row.Int(ColQuantity, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)
}

func TestParseEmptyDataRow(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Component Name", "Quantity"},
		[]interface{}{nil, nil},
		[]interface{}{"Premset", 1},
	)

	rows, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].String(ColComponentName))
	assert.Equal(t, "Premset", rows[1].String(ColComponentName))
	assert.Equal(t, 3, rows[1].Number())
}
