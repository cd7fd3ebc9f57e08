// Package importer parses uploaded delivery spreadsheets into normalized rows
// for the bulk import pipeline.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one normalized spreadsheet row. It is transient: the pipeline
// consumes it once and never persists it as-is.
type Row struct {
	Destinatario  string `json:"destinatario"`
	Direccion     string `json:"direccion"`
	Telefono      string `json:"telefono"`
	Localidad     string `json:"localidad"`
	Observaciones string `json:"observaciones"`
}

// Canonical field names produced by header mapping.
const (
	fieldDestinatario  = "destinatario"
	fieldDireccion     = "direccion"
	fieldTelefono      = "telefono"
	fieldLocalidad     = "localidad"
	fieldObservaciones = "observaciones"
)

// columnSynonyms maps a normalized (lowercased, trimmed) header to its
// canonical field. Unmapped headers are ignored.
var columnSynonyms = map[string]string{
	"destinatario":        fieldDestinatario,
	"nombre":              fieldDestinatario,
	"nombre destinatario": fieldDestinatario,
	"cliente":             fieldDestinatario,
	"direccion":           fieldDireccion,
	"dirección":           fieldDireccion,
	"direccion entrega":   fieldDireccion,
	"dirección entrega":   fieldDireccion,
	"address":             fieldDireccion,
	"telefono":            fieldTelefono,
	"teléfono":            fieldTelefono,
	"celular":             fieldTelefono,
	"phone":               fieldTelefono,
	"tel":                 fieldTelefono,
	"localidad":           fieldLocalidad,
	"zona":                fieldLocalidad,
	"barrio":              fieldLocalidad,
	"sector":              fieldLocalidad,
	"observaciones":       fieldObservaciones,
	"notas":               fieldObservaciones,
	"comentarios":         fieldObservaciones,
	"notes":               fieldObservaciones,
}

// ParseRows reads the first sheet of an Excel workbook: a header row followed
// by data rows in arbitrary column order. Headers are matched against the
// synonym table case-insensitively; destinatario and direccion are required.
// Rows where both required fields are empty are dropped.
func ParseRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("el archivo no es un Excel válido: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer la hoja %q: %w", sheet, err)
	}

	if len(rawRows) < 2 {
		return nil, fmt.Errorf("el archivo está vacío o no tiene datos válidos")
	}

	headers := rawRows[0]
	// columnMap: sheet column index → canonical field.
	columnMap := make(map[int]string, len(headers))
	mapped := make(map[string]bool)
	for i, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		if field, ok := columnSynonyms[normalized]; ok {
			columnMap[i] = field
			mapped[field] = true
		}
	}

	var missing []string
	for _, required := range []string{fieldDestinatario, fieldDireccion} {
		if !mapped[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan columnas requeridas: %s. Columnas encontradas: %s",
			strings.Join(missing, ", "), strings.Join(trimAll(headers), ", "))
	}

	rows := make([]Row, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		var row Row
		for i, cell := range raw {
			value := strings.TrimSpace(cell)
			switch columnMap[i] {
			case fieldDestinatario:
				row.Destinatario = value
			case fieldDireccion:
				row.Direccion = value
			case fieldTelefono:
				row.Telefono = value
			case fieldLocalidad:
				row.Localidad = value
			case fieldObservaciones:
				row.Observaciones = value
			}
		}
		if row.Destinatario == "" && row.Direccion == "" {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no se encontraron filas con datos válidos")
	}

	return rows, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
