package importacion

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Claves canónicas a las que se mapean las columnas de la planilla.
const (
	CampoNumero           = "numero"
	CampoTipoDocumento    = "tipo_documento"
	CampoCedula           = "cedula"
	CampoNombre           = "nombre"
	CampoApellido         = "apellido"
	CampoTelefono         = "telefono"
	CampoEmail            = "email"
	CampoDireccion        = "direccion"
	CampoCiudad           = "ciudad"
	CampoLocalidad        = "localidad"
	CampoBarrio           = "barrio"
	CampoZona             = "zona"
	CampoFechaNacimiento  = "fecha_nacimiento"
	CampoGenero           = "genero"
	CampoProfesion        = "profesion"
	CampoCoordinador      = "coordinador"
	CampoLider            = "lider"
	CampoCuotaMercadeo    = "cuota_mercadeo"
	CampoCuotaImpacto     = "cuota_impacto"
	CampoCuotaVotoCautivo = "cuota_voto_cautivo"
)

// Tabla de sinónimos: cada grafía humana ya despojada de tildes,
// minúsculas y con puntos convertidos en espacios.
var sinonimos = map[string]string{
	"no":                  CampoNumero,
	"n":                   CampoNumero,
	"num":                 CampoNumero,
	"numero":              CampoNumero,
	"item":                CampoNumero,
	"tipo doc":            CampoTipoDocumento,
	"tipo documento":      CampoTipoDocumento,
	"tipo de documento":   CampoTipoDocumento,
	"cc":                  CampoCedula,
	"c c":                 CampoCedula,
	"cedula":              CampoCedula,
	"documento":           CampoCedula,
	"no documento":        CampoCedula,
	"numero documento":    CampoCedula,
	"numero de documento": CampoCedula,
	"identificacion":      CampoCedula,
	"nombre":              CampoNombre,
	"nombres":             CampoNombre,
	"nombre completo":     CampoNombre,
	"nombres y apellidos": CampoNombre,
	"apellido":            CampoApellido,
	"apellidos":           CampoApellido,
	"tel":                 CampoTelefono,
	"telefono":            CampoTelefono,
	"celular":             CampoTelefono,
	"movil":               CampoTelefono,
	"numero celular":      CampoTelefono,
	"email":               CampoEmail,
	"e mail":              CampoEmail,
	"e-mail":              CampoEmail,
	"correo":              CampoEmail,
	"correo electronico":  CampoEmail,
	"direccion":           CampoDireccion,
	"ciudad":              CampoCiudad,
	"municipio":           CampoCiudad,
	"localidad":           CampoLocalidad,
	"comuna":              CampoLocalidad,
	"barrio":              CampoBarrio,
	"zona":                CampoZona,
	"fecha nacimiento":    CampoFechaNacimiento,
	"fecha de nacimiento": CampoFechaNacimiento,
	"nacimiento":          CampoFechaNacimiento,
	"genero":              CampoGenero,
	"sexo":                CampoGenero,
	"profesion":           CampoProfesion,
	"ocupacion":           CampoProfesion,
	"coordinador":         CampoCoordinador,
	"coordinador a":       CampoCoordinador,
	"coordinadora":        CampoCoordinador,
	"lider":               CampoLider,
	"lider a":             CampoLider,
	"lideresa":            CampoLider,
	"cuota mercadeo":      CampoCuotaMercadeo,
	"mercadeo":            CampoCuotaMercadeo,
	"cuota impacto":       CampoCuotaImpacto,
	"impacto":             CampoCuotaImpacto,
	"cuota voto cautivo":  CampoCuotaVotoCautivo,
	"voto cautivo":        CampoCuotaVotoCautivo,
}

var quitarDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizarEncabezado mapea un encabezado humano a su clave canónica.
// Nunca falla: un encabezado desconocido sale con su nombre slugificado,
// de modo que las columnas extra pasan de largo en vez de rechazarse.
func NormalizarEncabezado(bruto string) string {
	limpio, _, err := transform.String(quitarDiacriticos, bruto)
	if err != nil {
		limpio = bruto
	}
	limpio = strings.ToLower(limpio)
	limpio = strings.ReplaceAll(limpio, ".", " ")
	limpio = strings.Join(strings.Fields(limpio), " ")

	if canonica, ok := sinonimos[limpio]; ok {
		return canonica
	}
	return strings.ReplaceAll(limpio, " ", "_")
}
