package importacion

import (
	"context"

	"github.com/CampanaDigital/api-personas/internal/persona"
	"gorm.io/gorm"
)

// AlmacenPersonas implementa Almacen sobre el repositorio de personas.
type AlmacenPersonas struct {
	DB   *gorm.DB
	Repo persona.Repository
}

func NewAlmacenPersonas(db *gorm.DB) *AlmacenPersonas {
	return &AlmacenPersonas{DB: db, Repo: persona.NewRepository()}
}

func (a *AlmacenPersonas) GuardarLote(ctx context.Context, personas []*persona.Persona) error {
	return a.Repo.GuardarLote(a.DB.WithContext(ctx), personas)
}

func (a *AlmacenPersonas) Guardar(ctx context.Context, p *persona.Persona) error {
	return a.Repo.Guardar(a.DB.WithContext(ctx), p)
}
