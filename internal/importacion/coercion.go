package importacion

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Tipo de coerción por campo canónico; lo que no aparece aquí se trata
// como cadena.
// El número de hoja no aparece aquí: llega como cadena al corrector,
// que lo sanea a dígitos y lo entiende como entero.
var camposEnteros = map[string]bool{
	CampoCuotaMercadeo:    true,
	CampoCuotaImpacto:     true,
	CampoCuotaVotoCautivo: true,
}

var camposFecha = map[string]bool{
	CampoFechaNacimiento: true,
}

// Desfase entre la época de la planilla y 1970-01-01, en días.
const desfaseEpocaPlanilla = 25569

var formatosFecha = []string{
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02",
	"2006-01-02 15:04",
}

// CoercionarCampo convierte el valor crudo de una celda al tipo del
// campo: int, time.Time o string; un valor inválido o ausente es nil.
// Es una transformación pura, sin efectos.
func CoercionarCampo(clave, bruto string) interface{} {
	switch {
	case camposEnteros[clave]:
		return coercionarEntero(bruto)
	case camposFecha[clave]:
		return coercionarFecha(bruto)
	default:
		return coercionarCadena(bruto)
	}
}

func coercionarEntero(bruto string) interface{} {
	s := strings.TrimSpace(bruto)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// las celdas numéricas pueden venir como "12.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return nil
}

func coercionarFecha(bruto string) interface{} {
	s := strings.TrimSpace(bruto)
	if s == "" {
		return nil
	}
	for _, formato := range formatosFecha {
		if t, err := time.Parse(formato, s); err == nil {
			return t
		}
	}
	// Serial de planilla: días desde la época del formato.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		segundos := (serial - desfaseEpocaPlanilla) * 86400
		t := time.Unix(int64(math.Round(segundos)), 0).UTC()
		return t
	}
	return nil
}

func coercionarCadena(bruto string) interface{} {
	s := strings.TrimSpace(bruto)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	// sólo puntuación o espacios cuenta como ausente, no como error
	if !tieneContenido(s) {
		return nil
	}
	return s
}

func tieneContenido(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
