package coordinador

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, c *Coordinador) error
	BuscarPorID(db *gorm.DB, id uuid.UUID) (*Coordinador, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Coordinador, error)
	ListarTodos(db *gorm.DB) ([]Coordinador, error)
	Eliminar(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, c *Coordinador) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uuid.UUID) (*Coordinador, error) {
	var c Coordinador
	err := db.Preload("Usuario").Preload("Perfil").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Coordinador, error) {
	var c Coordinador
	err := db.Where("email = ?", email).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Coordinador, error) {
	var coordinadores []Coordinador
	err := db.Preload("Usuario").Preload("Perfil").Find(&coordinadores).Error
	return coordinadores, err
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&Coordinador{}, "id = ?", id).Error
}
