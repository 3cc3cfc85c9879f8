package utils

import "regexp"

// Patrón canónico 8-4-4-4-12 en hexadecimal.
var patronUUID = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// EsUUIDValido valida el identificador antes de cualquier llamada remota;
// un id malformado se rechaza localmente.
func EsUUIDValido(id string) bool {
	return patronUUID.MatchString(id)
}
