package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadAny_CSVSemicolon(t *testing.T) {
	src := "\uFEFFOrden;Tiempo real;\n202467;1,0;\n202467;0,5;\n;;\n202468;2:00;\n"

	ds, err := ReadAny(strings.NewReader(src), "real.CSV", 1)
	require.NoError(t, err)

	assert.Equal(t, "real.CSV", ds.Name)
	assert.Equal(t, []string{"Orden", "Tiempo real", "Column 3"}, ds.Columns)
	require.Len(t, ds.Rows, 3, "blank rows are skipped")
	assert.Equal(t, "202467", ds.Rows[0]["Orden"])
	assert.Equal(t, "1,0", ds.Rows[0]["Tiempo real"])
	assert.Equal(t, "2:00", ds.Rows[2]["Tiempo real"])
}

func TestReadAny_CSVHeaderRowAndDuplicates(t *testing.T) {
	src := "Export MES 2024-05\nOrden,Horas,Horas\n 1 ,2,3\n"

	ds, err := ReadAny(strings.NewReader(src), "t.txt", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Orden", "Horas", "Horas (2)"}, ds.Columns)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "1", ds.Rows[0]["Orden"], "cells are trimmed")
	assert.Equal(t, "3", ds.Rows[0]["Horas (2)"])
}

func TestReadAny_Unsupported(t *testing.T) {
	_, err := ReadAny(strings.NewReader("x"), "data.json", 1)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReadAny_XLSXAllSheets(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Orden", "Cantidad orden", "Cantidad buena"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{202467, 500, 445}))
	_, err := f.NewSheet("Turno 2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Turno 2", "A1", &[]any{"Orden", "Cantidad buena", "Comentario"}))
	require.NoError(t, f.SetSheetRow("Turno 2", "A2", &[]any{202468, 12.5, "ok"}))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ds, err := ReadAny(&buf, "prod.xlsx", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Turno 2"}, ds.Sheets)
	assert.Equal(t, []string{"Orden", "Cantidad orden", "Cantidad buena", "Comentario"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "202467", ds.Rows[0]["Orden"])
	assert.Equal(t, "445", ds.Rows[0]["Cantidad buena"])
	assert.Equal(t, "12.5", ds.Rows[1]["Cantidad buena"])
	assert.Equal(t, "ok", ds.Rows[1]["Comentario"])
	_, ok := ds.Rows[1]["Cantidad orden"]
	assert.False(t, ok, "columns missing on a sheet are absent from its rows")
}

func TestReadAny_BrokenXLSX(t *testing.T) {
	_, err := ReadAny(strings.NewReader("not a zip"), "broken.xlsx", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.xlsx")
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,5;2;3")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb\tc")))
	assert.Equal(t, ',', sniffDelimiter(nil))
}

func TestPickHeader(t *testing.T) {
	h := pickHeader([][]string{{" Orden ", "", "Orden"}}, 1)
	assert.Equal(t, []string{"Orden", "Column 2", "Orden (2)"}, h)

	h = pickHeader([][]string{{"a"}}, 5)
	assert.Equal(t, []string{"a"}, h, "out of range header row falls back to the first row")
}

func TestReadAny_SkipsRepeatedHeaderAndTotals(t *testing.T) {
	src := "Orden;Tiempo real\n" +
		"202467;1,0\n" +
		"Orden;Tiempo real\n" +
		"202468;2,5\n" +
		"Total;3,5\n" +
		"Итого: ;3,5\n"

	ds, err := ReadAny(strings.NewReader(src), "real.csv", 1)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "202467", ds.Rows[0]["Orden"])
	assert.Equal(t, "202468", ds.Rows[1]["Orden"])
}

func TestReadAny_XLSXDurationCells(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Orden", "Tiempo real", "Inicio"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{202467, 1.5 / 24, 45000.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{202468, 25.5 / 24, 45001.25}))

	hmm := "[h]:mm"
	duration, err := f.NewStyle(&excelize.Style{CustomNumFmt: &hmm})
	require.NoError(t, err)
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	stamp := "dd/mm/yyyy hh:mm"
	datetime, err := f.NewStyle(&excelize.Style{CustomNumFmt: &stamp})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A3", thousands))
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B3", duration))
	require.NoError(t, f.SetCellStyle("Sheet1", "C2", "C3", datetime))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ds, err := ReadAny(&buf, "t.xlsx", 1)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "202467", ds.Rows[0]["Orden"], "#,##0 keys stay raw")
	assert.Equal(t, "1.5", ds.Rows[0]["Tiempo real"], "day fraction becomes hours")
	assert.Equal(t, "25.5", ds.Rows[1]["Tiempo real"])
	assert.Equal(t, "45000.5", ds.Rows[0]["Inicio"], "date-time stays raw")
}

func TestIsTimeFormat(t *testing.T) {
	for _, code := range []string{"[h]:mm", "[h]:mm:ss", "h:mm AM/PM", "[$-409]h:mm:ss", "[mm]:ss", "hh:mm"} {
		assert.True(t, isTimeFormat(code), code)
	}
	for _, code := range []string{"#,##0", "0.00", "dd/mm/yyyy hh:mm", "yyyy-mm-dd", "[Red]0.00", `0.0 "h"`, "General"} {
		assert.False(t, isTimeFormat(code), code)
	}
}

func TestReadAny_BrokenXLS(t *testing.T) {
	_, err := ReadAny(strings.NewReader("not a compound file"), "legacy.xls", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legacy.xls")
}
