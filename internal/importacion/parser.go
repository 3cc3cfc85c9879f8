package importacion

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrArchivoVacio indica una planilla sin filas de datos; se resuelve
// localmente, nunca llega al almacén remoto.
var ErrArchivoVacio = errors.New("la planilla no tiene filas de datos")

// LeerPlanilla decodifica la primera hoja del archivo subido usando la
// primera fila como encabezados y retorna las filas ya coercionadas y
// corregidas, en el orden de envío.
func LeerPlanilla(r io.Reader) ([]*Fila, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hojas := f.GetSheetList()
	if len(hojas) == 0 {
		return nil, ErrArchivoVacio
	}

	celdas, err := f.GetRows(hojas[0])
	if err != nil {
		return nil, err
	}
	if len(celdas) < 2 {
		return nil, ErrArchivoVacio
	}

	claves := make([]string, len(celdas[0]))
	columnas := make(map[string]bool, len(celdas[0]))
	for i, encabezado := range celdas[0] {
		claves[i] = NormalizarEncabezado(encabezado)
		columnas[claves[i]] = true
	}

	filas := make([]*Fila, 0, len(celdas)-1)
	for i, fila := range celdas[1:] {
		campos := map[string]interface{}{}
		for j, celda := range fila {
			if j >= len(claves) {
				break
			}
			if v := CoercionarCampo(claves[j], celda); v != nil {
				campos[claves[j]] = v
			}
		}
		if len(campos) == 0 {
			continue // fila totalmente vacía
		}
		f := &Fila{Indice: i, Campos: campos}
		CorregirFila(f, columnas)
		NormalizarNumeroHoja(f)
		filas = append(filas, f)
	}
	if len(filas) == 0 {
		return nil, ErrArchivoVacio
	}

	OrdenarFilas(filas)
	return filas, nil
}
