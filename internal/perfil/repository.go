package perfil

import "gorm.io/gorm"

type Repository interface {
	Crear(db *gorm.DB, p *Perfil) error
	BuscarPorID(db *gorm.DB, id uint) (*Perfil, error)
	ListarTodos(db *gorm.DB) ([]Perfil, error)
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Crear(db *gorm.DB, p *Perfil) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Perfil, error) {
	var p Perfil
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Perfil, error) {
	var perfiles []Perfil
	err := db.Find(&perfiles).Error
	return perfiles, err
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Perfil{}, id).Error
}
