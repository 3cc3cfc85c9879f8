package coordinador

import (
	"time"

	"github.com/CampanaDigital/api-personas/internal/perfil"
	"github.com/CampanaDigital/api-personas/internal/persona"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coordinador asigna el rol de coordinación a una persona y guarda su
// credencial de acceso. El hash local es un espejo operativo: cuando hay
// identidad externa enlazada (AuthUserID), esa identidad es la autoritativa.
type Coordinador struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	UsuarioID *uuid.UUID       `gorm:"type:uuid;index" json:"usuarioId,omitempty"`
	Usuario   *persona.Persona `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`

	Nombre   string `gorm:"not null" json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`

	// Identidad externa: a lo sumo una por coordinador
	AuthUserID *string `gorm:"uniqueIndex" json:"authUserId,omitempty"`

	// Referencia a otro coordinador (quien lo refirió)
	ReferenciaID *uuid.UUID `gorm:"type:uuid" json:"referenciaId,omitempty"`

	PerfilID *uint          `json:"perfilId,omitempty"`
	Perfil   *perfil.Perfil `gorm:"foreignKey:PerfilID" json:"perfil,omitempty"`

	EsAdmin bool `json:"esAdmin"`
}

func (c *Coordinador) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
