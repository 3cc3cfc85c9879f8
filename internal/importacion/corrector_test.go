package importacion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var columnasCompletas = map[string]bool{
	CampoTelefono:    true,
	CampoCedula:      true,
	CampoNombre:      true,
	CampoCoordinador: true,
	CampoLider:       true,
}

func filaConCampos(campos map[string]interface{}) *Fila {
	return &Fila{Indice: 0, Campos: campos}
}

func TestCorregirFila_BloqueCompletoDesplazado(t *testing.T) {
	// todo corrido una columna a la izquierda: la cédula cayó en
	// teléfono, el nombre en cédula y el teléfono terminó en líder
	f := filaConCampos(map[string]interface{}{
		CampoTelefono:    "1023456789",
		CampoCedula:      "Juan Pérez",
		CampoNombre:      "María Gómez",
		CampoCoordinador: "Pedro Díaz",
		CampoLider:       "3104567890",
	})

	CorregirFila(f, columnasCompletas)

	require.Equal(t, "3104567890", f.Campos[CampoTelefono])
	require.Equal(t, "1023456789", f.Campos[CampoCedula])
	require.Equal(t, "Juan Pérez", f.Campos[CampoNombre])
	require.Equal(t, "María Gómez", f.Campos[CampoCoordinador])
	require.Equal(t, "Pedro Díaz", f.Campos[CampoLider])
}

func TestCorregirFila_EsIdempotente(t *testing.T) {
	f := filaConCampos(map[string]interface{}{
		CampoTelefono:    "1023456789",
		CampoCedula:      "Juan Pérez",
		CampoNombre:      "María Gómez",
		CampoCoordinador: "Pedro Díaz",
		CampoLider:       "3104567890",
	})

	CorregirFila(f, columnasCompletas)
	corregida := map[string]interface{}{}
	for k, v := range f.Campos {
		corregida[k] = v
	}

	// sobre una fila ya corregida la cédula ya no parece nombre: no-op
	CorregirFila(f, columnasCompletas)
	require.Equal(t, corregida, f.Campos)
}

func TestCorregirFila_FilaAmbiguaQuedaIntacta(t *testing.T) {
	// la cédula parece nombre pero ningún campo parece identificador:
	// preferimos el falso negativo
	f := filaConCampos(map[string]interface{}{
		CampoTelefono:    "sin dato",
		CampoCedula:      "Juan Pérez",
		CampoNombre:      "María Gómez",
		CampoCoordinador: "Pedro Díaz",
		CampoLider:       "Ana Ruiz",
	})

	CorregirFila(f, columnasCompletas)
	require.Equal(t, "Juan Pérez", f.Campos[CampoCedula])
	require.Equal(t, "María Gómez", f.Campos[CampoNombre])
}

func TestCorregirFila_CampoFaltanteNoDispara(t *testing.T) {
	// con una columna del bloque vacía el patrón no se evalúa
	f := filaConCampos(map[string]interface{}{
		CampoTelefono:    "1023456789",
		CampoCedula:      "Juan Pérez",
		CampoNombre:      "María Gómez",
		CampoCoordinador: "Pedro Díaz",
		// líder ausente
	})

	CorregirFila(f, columnasCompletas)
	require.Equal(t, "Juan Pérez", f.Campos[CampoCedula])
}

// Escenario con plantilla de tres columnas: Nombre, Cedula, Coordinador.
// El nombre cayó en la cédula y el número de diez dígitos en coordinador.
func TestCorregirFila_PlantillaDeTresColumnas(t *testing.T) {
	columnas := map[string]bool{
		CampoNombre:      true,
		CampoCedula:      true,
		CampoCoordinador: true,
	}
	f := filaConCampos(map[string]interface{}{
		CampoCedula:      "Carlos Mario",
		CampoNombre:      "Luisa Soto",
		CampoCoordinador: "3216549870",
	})

	CorregirFila(f, columnas)

	require.Equal(t, "3216549870", f.Campos[CampoCedula])
	require.Equal(t, "Carlos Mario", f.Campos[CampoNombre])
	require.Equal(t, "Luisa Soto", f.Campos[CampoCoordinador])
}

func TestNormalizarNumeroHoja(t *testing.T) {
	f := filaConCampos(map[string]interface{}{CampoNumero: "No. 12"})
	NormalizarNumeroHoja(f)
	require.Equal(t, 12, f.Campos[CampoNumero])

	// sin dígitos: el campo se descarta, nunca se vuelve cero
	f = filaConCampos(map[string]interface{}{CampoNumero: "#"})
	NormalizarNumeroHoja(f)
	_, existe := f.Campos[CampoNumero]
	require.False(t, existe)

	// sin campo: no-op
	f = filaConCampos(map[string]interface{}{})
	NormalizarNumeroHoja(f)
	require.Empty(t, f.Campos)
}
