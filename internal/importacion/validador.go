package importacion

import (
	"regexp"
	"unicode"
)

// Incidencia es el par (fila, errores) que se muestra al operador. Es
// dato derivado: se recalcula cada vez que la fila cambia y nunca se
// persiste.
type Incidencia struct {
	Fila    int      `json:"fila"`
	Errores []string `json:"errores"`
}

var soloDigitos = regexp.MustCompile(`^[0-9]+$`)

func esNombreValido(v string) bool {
	tieneLetra := false
	for _, r := range v {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			tieneLetra = true
		}
	}
	return tieneLetra
}

// ValidarFila aplica el conjunto fijo de reglas y retorna los mensajes
// de error de la fila; una fila limpia retorna lista vacía. No muta nada
// y nunca detiene el procesamiento de las demás filas.
func ValidarFila(f *Fila) []string {
	var errores []string

	cedula := f.cadena(CampoCedula)
	if cedula == "" {
		errores = append(errores, "falta la cédula")
	} else if !soloDigitos.MatchString(cedula) {
		errores = append(errores, "la cédula debe contener sólo dígitos")
	}

	nombre := f.cadena(CampoNombre)
	if nombre == "" {
		errores = append(errores, "falta el nombre")
	} else if !esNombreValido(nombre) {
		errores = append(errores, "el nombre no puede contener dígitos")
	}

	if telefono := f.cadena(CampoTelefono); telefono != "" && !soloDigitos.MatchString(telefono) {
		errores = append(errores, "el teléfono debe contener sólo dígitos")
	}

	if coordinador := f.cadena(CampoCoordinador); coordinador != "" && !esNombreValido(coordinador) {
		errores = append(errores, "el nombre del coordinador no puede contener dígitos")
	}
	if lider := f.cadena(CampoLider); lider != "" && !esNombreValido(lider) {
		errores = append(errores, "el nombre del líder no puede contener dígitos")
	}

	return errores
}

// ValidarFilas corre el validador sobre las filas no omitidas. Se vuelve
// a ejecutar justo antes del envío porque el operador pudo corregir u
// omitir filas entre la vista previa y la confirmación.
func ValidarFilas(filas []*Fila) []Incidencia {
	var incidencias []Incidencia
	for _, f := range filas {
		if f.Omitida {
			continue
		}
		if errores := ValidarFila(f); len(errores) > 0 {
			incidencias = append(incidencias, Incidencia{Fila: f.Indice, Errores: errores})
		}
	}
	return incidencias
}
