package importacion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func construirPlanilla(t *testing.T, filas [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	hoja := f.GetSheetName(0)
	for i, fila := range filas {
		for j, celda := range fila {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(hoja, ref, celda))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestLeerPlanilla_EncabezadosYCoercion(t *testing.T) {
	r := construirPlanilla(t, [][]interface{}{
		{"No.", "Cédula", "Nombre Completo", "Teléfono", "Cuota Mercadeo"},
		{"2", "1023456789", "Juan Pérez", "3104567890", "5"},
		{"1", "987654321", "María Gómez", "", "null"},
	})

	filas, err := LeerPlanilla(r)
	require.NoError(t, err)
	require.Len(t, filas, 2)

	// ordenadas por número de hoja
	require.Equal(t, 1, filas[0].Campos[CampoNumero])
	require.Equal(t, "María Gómez", filas[0].Campos[CampoNombre])
	require.Equal(t, 2, filas[1].Campos[CampoNumero])
	require.Equal(t, 5, filas[1].Campos[CampoCuotaMercadeo])

	// la celda vacía y el "null" literal no aparecen como campos
	_, existe := filas[0].Campos[CampoTelefono]
	require.False(t, existe)
	_, existe = filas[0].Campos[CampoCuotaMercadeo]
	require.False(t, existe)
}

// Escenario de plantilla corrida: la fila 2 trae el nombre en la columna
// de la cédula y un número de diez dígitos en la de coordinador.
func TestLeerPlanilla_CorrigeFilaDesplazada(t *testing.T) {
	r := construirPlanilla(t, [][]interface{}{
		{"Nombre", "Cedula", "Coordinador"},
		{"Ana Ruiz", "123456789", "Pedro Díaz"},
		{"Luisa Soto", "Carlos Mario", "3216549870"},
		{"Elsa Mora", "555444333", "Iván Toro"},
	})

	filas, err := LeerPlanilla(r)
	require.NoError(t, err)
	require.Len(t, filas, 3)

	porIndice := map[int]*Fila{}
	for _, f := range filas {
		porIndice[f.Indice] = f
	}

	// la fila corrida quedó con nombre y cédula en su lugar
	require.Equal(t, "3216549870", porIndice[1].Campos[CampoCedula])
	require.Equal(t, "Carlos Mario", porIndice[1].Campos[CampoNombre])
	require.Equal(t, "Luisa Soto", porIndice[1].Campos[CampoCoordinador])

	// las filas bien digitadas no se tocaron
	require.Equal(t, "123456789", porIndice[0].Campos[CampoCedula])
	require.Equal(t, "Ana Ruiz", porIndice[0].Campos[CampoNombre])
}

func TestLeerPlanilla_ArchivoSinDatos(t *testing.T) {
	r := construirPlanilla(t, [][]interface{}{
		{"Nombre", "Cedula"},
	})
	_, err := LeerPlanilla(r)
	require.ErrorIs(t, err, ErrArchivoVacio)
}

func TestLeerPlanilla_ColumnasExtraPasanDeLargo(t *testing.T) {
	r := construirPlanilla(t, [][]interface{}{
		{"Cedula", "Nombre", "Columna Rara"},
		{"123456789", "Ana Ruiz", "dato extra"},
	})

	filas, err := LeerPlanilla(r)
	require.NoError(t, err)
	require.Equal(t, "dato extra", filas[0].Campos["columna_rara"])
}
