package militante

import (
	"time"

	"github.com/CampanaDigital/api-personas/internal/coordinador"
	"github.com/CampanaDigital/api-personas/internal/persona"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Militante enlaza una persona con su coordinador y clasifica su tipo de
// militancia. Las cuotas son una copia desnormalizada para reportes; la
// fuente de verdad vive en la Persona y se sincroniza periódicamente.
type Militante struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	PersonaID uuid.UUID        `gorm:"type:uuid;not null;index" json:"personaId"`
	Persona   *persona.Persona `gorm:"foreignKey:PersonaID" json:"persona,omitempty"`

	CoordinadorID *uuid.UUID               `gorm:"type:uuid;index" json:"coordinadorId,omitempty"`
	Coordinador   *coordinador.Coordinador `gorm:"foreignKey:CoordinadorID" json:"coordinador,omitempty"`

	Tipo string `gorm:"size:50" json:"tipo"`

	// Copia de las cuotas de la Persona al último sincronizado
	CuotaMercadeo    int `gorm:"default:0" json:"cuotaMercadeo"`
	CuotaImpacto     int `gorm:"default:0" json:"cuotaImpacto"`
	CuotaVotoCautivo int `gorm:"default:0" json:"cuotaVotoCautivo"`
}

func (m *Militante) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
