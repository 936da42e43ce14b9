package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"prodrecon/internal/reconcile/model"
)

func TestWriteXLSX(t *testing.T) {
	tables := []model.Table{
		{
			Name:    "materials",
			Columns: []string{"Order", "Material", "Correction"},
			Rows:    [][]any{{"202467", "MAT-1", 4.99}, {"202468", "MAT-1", 100.5}},
		},
		{Name: "time", Columns: []string{"Order", "Deviation"}},
		{Name: strings.Repeat("x", 40), Columns: []string{"A"}},
	}

	b, err := Bytes(tables)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"materials", "time", strings.Repeat("x", 31)}, f.GetSheetList())

	rows, err := f.GetRows("materials")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Order", "Material", "Correction"}, rows[0])
	assert.Equal(t, []string{"202468", "MAT-1", "100.5"}, rows[2])

	rows, err = f.GetRows("time")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestWriteXLSX_NoTables(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteXLSX(&buf, nil))
	assert.Zero(t, buf.Len())
}
