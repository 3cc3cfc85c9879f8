package importacion

import (
	"sort"
	"time"

	"github.com/CampanaDigital/api-personas/internal/persona"
)

// Fila es el registro efímero de una fila de planilla ya coercionada y
// corregida. Vive sólo durante la sesión de carga.
type Fila struct {
	Indice  int                    `json:"indice"` // índice original en la planilla (base 0, sin contar encabezado)
	Campos  map[string]interface{} `json:"campos"`
	Omitida bool                   `json:"omitida"`
	Editada bool                   `json:"editada"`
}

func (f *Fila) cadena(clave string) string {
	if v, ok := f.Campos[clave].(string); ok {
		return v
	}
	return ""
}

func (f *Fila) entero(clave string) (int, bool) {
	v, ok := f.Campos[clave].(int)
	return v, ok
}

func (f *Fila) fecha(clave string) (time.Time, bool) {
	v, ok := f.Campos[clave].(time.Time)
	return v, ok
}

// AplicarEdicion superpone los valores corregidos a mano por el operador,
// coercionándolos con la misma tabla de tipos de la carga.
func (f *Fila) AplicarEdicion(cambios map[string]string) {
	for clave, bruto := range cambios {
		v := CoercionarCampo(clave, bruto)
		if v == nil {
			delete(f.Campos, clave)
			continue
		}
		f.Campos[clave] = v
	}
	f.Editada = true
}

// APersona materializa la fila como registro de persona listo para el
// almacén.
func (f *Fila) APersona() *persona.Persona {
	p := &persona.Persona{
		TipoDocumento:     f.cadena(CampoTipoDocumento),
		Cedula:            f.cadena(CampoCedula),
		Nombre:            f.cadena(CampoNombre),
		Apellido:          f.cadena(CampoApellido),
		Telefono:          f.cadena(CampoTelefono),
		Email:             f.cadena(CampoEmail),
		Direccion:         f.cadena(CampoDireccion),
		Genero:            f.cadena(CampoGenero),
		Profesion:         f.cadena(CampoProfesion),
		NombreCoordinador: f.cadena(CampoCoordinador),
		NombreLider:       f.cadena(CampoLider),
	}
	if n, ok := f.entero(CampoNumero); ok {
		p.NumeroHoja = &n
	}
	if t, ok := f.fecha(CampoFechaNacimiento); ok {
		p.FechaNacimiento = &t
	}
	if n, ok := f.entero(CampoCuotaMercadeo); ok {
		p.CuotaMercadeo = n
	}
	if n, ok := f.entero(CampoCuotaImpacto); ok {
		p.CuotaImpacto = n
	}
	if n, ok := f.entero(CampoCuotaVotoCautivo); ok {
		p.CuotaVotoCautivo = n
	}
	return p
}

// OrdenarFilas ordena ascendente por el número de hoja opcional; las
// filas sin número van al final. El orden sólo decide qué filas caen en
// qué lote, no tiene semántica transaccional.
func OrdenarFilas(filas []*Fila) {
	sort.SliceStable(filas, func(i, j int) bool {
		ni, oki := filas[i].entero(CampoNumero)
		nj, okj := filas[j].entero(CampoNumero)
		if oki && okj {
			return ni < nj
		}
		return oki && !okj
	})
}
