package importacion

import (
	"regexp"
	"strings"
)

// El corrector recupera un error de digitación conocido: un bloque
// contiguo de campos desplazado una posición, con el nombre cayendo en
// la columna de la cédula. Las reglas codifican la plantilla de planilla
// usada por los digitadores de la campaña; sobre otra plantilla su
// comportamiento no está verificado, así que ante la duda la fila se
// deja como vino.
var bloqueDesplazable = [5]string{CampoTelefono, CampoCedula, CampoNombre, CampoCoordinador, CampoLider}

var patronNombre = regexp.MustCompile(`^[\p{L}' ]+$`)

var noDigitos = regexp.MustCompile(`[^0-9]`)

// pareceNombre acepta letras, espacios y apóstrofes con al menos dos
// palabras.
func pareceNombre(v string) bool {
	if !patronNombre.MatchString(v) {
		return false
	}
	return len(strings.Fields(v)) >= 2
}

// pareceIdentificador verifica que, quitando todo lo que no sea dígito,
// queden entre 7 y 12 dígitos.
func pareceIdentificador(v string) bool {
	d := noDigitos.ReplaceAllString(v, "")
	return len(d) >= 7 && len(d) <= 12
}

// CorregirFila rota el bloque desplazable una posición a la derecha
// cuando detecta el patrón de corrimiento. El bloque es la subsecuencia
// de los cinco campos canónicos que la planilla trae como columnas;
// todos deben venir con valor, el valor en la posición de la cédula debe
// parecer un nombre y el de la primera posición (teléfono) o el de la
// última debe parecer un identificador de 7 a 12 dígitos.
//
// Opera fila por fila, sin estado cruzado, y es un no-op sobre una fila
// ya corregida: preferimos falsos negativos a falsos positivos.
func CorregirFila(f *Fila, columnas map[string]bool) {
	var claves []string
	var valores []string
	posCedula := -1
	for _, clave := range bloqueDesplazable {
		if !columnas[clave] {
			continue
		}
		v, ok := f.Campos[clave].(string)
		if !ok || v == "" {
			return // todos los campos del bloque deben estar presentes
		}
		if clave == CampoCedula {
			posCedula = len(claves)
		}
		claves = append(claves, clave)
		valores = append(valores, v)
	}
	if len(claves) < 3 || posCedula < 0 || !columnas[CampoNombre] {
		return
	}

	if !pareceNombre(valores[posCedula]) {
		return
	}
	idFueraDeLugar := pareceIdentificador(valores[len(valores)-1]) ||
		(claves[0] == CampoTelefono && pareceIdentificador(valores[0]))
	if !idFueraDeLugar {
		return
	}

	// rotación a la derecha: el último valor pasa al primero
	f.Campos[claves[0]] = valores[len(valores)-1]
	for i := 1; i < len(claves); i++ {
		f.Campos[claves[i]] = valores[i-1]
	}
}

// NormalizarNumeroHoja reduce el identificador inicial a sus dígitos; si
// no queda nada se descarta el campo para que el número se trate como
// autoasignado, nunca como cero.
func NormalizarNumeroHoja(f *Fila) {
	v, ok := f.Campos[CampoNumero]
	if !ok {
		return
	}
	s, esCadena := v.(string)
	if !esCadena {
		return // ya vino numérico
	}
	d := noDigitos.ReplaceAllString(s, "")
	if d == "" {
		delete(f.Campos, CampoNumero)
		return
	}
	if n := coercionarEntero(d); n != nil {
		f.Campos[CampoNumero] = n
	} else {
		delete(f.Campos, CampoNumero)
	}
}
