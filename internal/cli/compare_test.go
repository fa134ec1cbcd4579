package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRunCompare(t *testing.T) {
	var buf bytes.Buffer
	code := runCompare(&buf, testPricer(), "Bracket", bracketRequest(), "", false)

	assert.Equal(t, exitOK, code)
	out := buf.String()
	assert.Contains(t, out, "Material comparison")
	assert.Contains(t, out, "Aluminum 3003")
	assert.Contains(t, out, "Stainless Steel 304")
	assert.Contains(t, out, "Mild Steel A36")
}

func TestRunCompare_JSONSorted(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, exitOK, runCompare(&buf, testPricer(), "", bracketRequest(), "", true))

	var rows []comparisonRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 9)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].UnitPrice, rows[i].UnitPrice)
	}
}

func TestRunCompare_WritesXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compare.xlsx")

	var buf bytes.Buffer
	require.Equal(t, exitOK, runCompare(&buf, testPricer(), "Bracket", bracketRequest(), path, false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	header, err := f.GetCellValue("Comparison", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Material", header)
	last, err := f.GetCellValue("Comparison", "A12")
	require.NoError(t, err)
	assert.NotEmpty(t, last, "one row per priced material")
}

func TestRunCompare_InvalidGeometry(t *testing.T) {
	req := bracketRequest()
	req.Part.Width = 0

	var buf bytes.Buffer
	assert.Equal(t, exitNotQuoted, runCompare(&buf, testPricer(), "", req, "", false))
	assert.Contains(t, buf.String(), "Cannot quote")
}
