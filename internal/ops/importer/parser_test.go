package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into the first sheet and returns the xlsx bytes.
func buildWorkbook(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestParseRows(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Destinatario", "Direccion", "Telefono", "Localidad", "Observaciones"},
		{"María Pérez", "Cra 7 # 12-34", "3001234567", "Suba", "dejar en portería"},
		{"Juan Gómez", "Cl 80 # 10-20", "3017654321", "Engativá", ""},
	})

	rows, err := ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Destinatario:  "María Pérez",
		Direccion:     "Cra 7 # 12-34",
		Telefono:      "3001234567",
		Localidad:     "Suba",
		Observaciones: "dejar en portería",
	}, rows[0])
	assert.Equal(t, "Juan Gómez", rows[1].Destinatario)
	assert.Empty(t, rows[1].Observaciones)
}

func TestParseRowsHeaderSynonymsAnyCase(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"  NOMBRE ", "Dirección Entrega", "CELULAR", "Barrio", "Notas"},
		{"Ana", "Av 68 # 1-2", "311", "kennedy", "frágil"},
	})

	rows, err := ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].Destinatario)
	assert.Equal(t, "Av 68 # 1-2", rows[0].Direccion)
	assert.Equal(t, "311", rows[0].Telefono)
	assert.Equal(t, "kennedy", rows[0].Localidad)
	assert.Equal(t, "frágil", rows[0].Observaciones)
}

func TestParseRowsUnknownHeadersIgnored(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Destinatario", "Direccion", "Columna Rara", "Otra"},
		{"Ana", "Cl 1", "x", "y"},
	})

	rows, err := ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Destinatario: "Ana", Direccion: "Cl 1"}, rows[0])
}

func TestParseRowsMissingRequiredColumns(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Telefono", "Localidad"},
		{"300", "Suba"},
	})

	_, err := ParseRows(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faltan columnas requeridas")
	assert.Contains(t, err.Error(), "destinatario")
	assert.Contains(t, err.Error(), "direccion")
	assert.Contains(t, err.Error(), "Telefono", "error names the headers found")
}

func TestParseRowsEmptyWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Destinatario", "Direccion"},
	})

	_, err := ParseRows(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vacío")
}

func TestParseRowsAllRowsFilteredOut(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Destinatario", "Direccion", "Telefono"},
		{"", "", "300"},
		{"  ", "  ", "301"},
	})

	_, err := ParseRows(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filas con datos válidos")
}

func TestParseRowsKeepsRowWithOneRequiredField(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Destinatario", "Direccion"},
		{"Solo Nombre", ""},
		{"", "Solo Dirección"},
	})

	rows, err := ParseRows(data)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseRowsNotAnExcel(t *testing.T) {
	_, err := ParseRows(bytes.NewReader([]byte("definitely,not,xlsx")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Excel válido")
}
