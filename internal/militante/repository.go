package militante

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, m *Militante) error
	BuscarPorID(db *gorm.DB, id uuid.UUID) (*Militante, error)
	ListarTodos(db *gorm.DB) ([]Militante, error)
	ListarPorCoordinador(db *gorm.DB, coordinadorID uuid.UUID) ([]Militante, error)
	Eliminar(db *gorm.DB, id uuid.UUID) error
	SincronizarCuotas(db *gorm.DB) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, m *Militante) error {
	return db.Save(m).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uuid.UUID) (*Militante, error) {
	var m Militante
	err := db.Preload("Persona").Preload("Coordinador").First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Militante, error) {
	var militantes []Militante
	err := db.Preload("Persona").Find(&militantes).Error
	return militantes, err
}

func (r *repositoryImpl) ListarPorCoordinador(db *gorm.DB, coordinadorID uuid.UUID) ([]Militante, error) {
	var militantes []Militante
	err := db.Preload("Persona").Where("coordinador_id = ?", coordinadorID).Find(&militantes).Error
	return militantes, err
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&Militante{}, "id = ?", id).Error
}

// SincronizarCuotas recopia las cuotas de compromiso desde cada Persona
// enlazada; retorna cuántos registros cambiaron.
func (r *repositoryImpl) SincronizarCuotas(db *gorm.DB) (int64, error) {
	res := db.Exec(`
		UPDATE militantes m
		SET cuota_mercadeo = p.cuota_mercadeo,
		    cuota_impacto = p.cuota_impacto,
		    cuota_voto_cautivo = p.cuota_voto_cautivo,
		    updated_at = NOW()
		FROM personas p
		WHERE p.id = m.persona_id
		  AND (m.cuota_mercadeo <> p.cuota_mercadeo
		       OR m.cuota_impacto <> p.cuota_impacto
		       OR m.cuota_voto_cautivo <> p.cuota_voto_cautivo)`)
	return res.RowsAffected, res.Error
}
