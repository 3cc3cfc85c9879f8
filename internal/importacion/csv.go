package importacion

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
)

// serializa el mapa de campos de la fila quitando saltos de línea
// embebidos; el escape de comas y comillas lo hace el escritor CSV.
func datosComoJSON(campos map[string]interface{}) string {
	b, err := json.Marshal(campos)
	if err != nil {
		return ""
	}
	s := strings.ReplaceAll(string(b), "\n", "")
	return strings.ReplaceAll(s, "\r", "")
}

// ReporteErrores produce el CSV exportable de filas fallidas:
// encabezado row,error,data y una fila por error.
func ReporteErrores(errores []ErrorFila) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"row", "error", "data"}); err != nil {
		return nil, err
	}
	for _, e := range errores {
		registro := []string{
			strconv.Itoa(e.Posicion),
			e.Mensaje,
			datosComoJSON(e.Datos),
		}
		if err := w.Write(registro); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ReporteValidacion produce el CSV de incidencias de la vista previa:
// encabezado row,errors,data con los errores unidos por punto y coma.
func ReporteValidacion(incidencias []Incidencia, filas []*Fila) ([]byte, error) {
	porIndice := make(map[int]*Fila, len(filas))
	for _, f := range filas {
		porIndice[f.Indice] = f
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"row", "errors", "data"}); err != nil {
		return nil, err
	}
	for _, inc := range incidencias {
		datos := ""
		if f, ok := porIndice[inc.Fila]; ok {
			datos = datosComoJSON(f.Campos)
		}
		registro := []string{
			strconv.Itoa(inc.Fila + 1),
			strings.Join(inc.Errores, ";"),
			datos,
		}
		if err := w.Write(registro); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
