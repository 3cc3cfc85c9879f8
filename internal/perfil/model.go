package perfil

import "gorm.io/gorm"

// Perfil agrupa los permisos simples que se consultan por rol.
type Perfil struct {
	gorm.Model
	Nombre                string `gorm:"uniqueIndex;not null" json:"nombre"`
	PuedeImportar         bool   `json:"puedeImportar"`
	PuedeGestionarEquipos bool   `json:"puedeGestionarEquipos"`
	PuedeVerReportes      bool   `json:"puedeVerReportes"`
}
