package persona

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Guardar(db *gorm.DB, p *Persona) error
	GuardarLote(db *gorm.DB, personas []*Persona) error
	BuscarPorID(db *gorm.DB, id uuid.UUID) (*Persona, error)
	BuscarPorCedula(db *gorm.DB, cedula string) (*Persona, error)
	ListarTodas(db *gorm.DB) ([]Persona, error)
	Actualizar(db *gorm.DB, id uuid.UUID, nuevosDatos *Persona) error
	Eliminar(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// columnas que la importación puede sobreescribir al deduplicar por cédula
var columnasImportacion = []string{
	"numero_hoja", "tipo_documento", "nombre", "apellido", "telefono", "email",
	"direccion", "fecha_nacimiento", "genero", "profesion",
	"nombre_coordinador", "nombre_lider",
	"cuota_mercadeo", "cuota_impacto", "cuota_voto_cautivo",
}

// Guardar inserta una persona deduplicando por cédula (upsert).
func (r *repositoryImpl) Guardar(db *gorm.DB, p *Persona) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cedula"}},
		DoUpdates: clause.AssignmentColumns(columnasImportacion),
	}).Create(p).Error
}

// GuardarLote inserta un lote completo en una sola escritura remota.
func (r *repositoryImpl) GuardarLote(db *gorm.DB, personas []*Persona) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cedula"}},
		DoUpdates: clause.AssignmentColumns(columnasImportacion),
	}).Create(&personas).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uuid.UUID) (*Persona, error) {
	var p Persona
	err := db.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repositoryImpl) BuscarPorCedula(db *gorm.DB, cedula string) (*Persona, error) {
	var p Persona
	err := db.Where("cedula = ?", cedula).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Persona, error) {
	var personas []Persona
	err := db.Order("nombre").Find(&personas).Error
	return personas, err
}

func (r *repositoryImpl) Actualizar(db *gorm.DB, id uuid.UUID, nuevosDatos *Persona) error {
	var existente Persona
	if err := db.First(&existente, "id = ?", id).Error; err != nil {
		return err
	}

	existente.TipoDocumento = nuevosDatos.TipoDocumento
	existente.Cedula = nuevosDatos.Cedula
	existente.Nombre = nuevosDatos.Nombre
	existente.Apellido = nuevosDatos.Apellido
	existente.Telefono = nuevosDatos.Telefono
	existente.Email = nuevosDatos.Email
	existente.Facebook = nuevosDatos.Facebook
	existente.Instagram = nuevosDatos.Instagram
	existente.CiudadID = nuevosDatos.CiudadID
	existente.LocalidadID = nuevosDatos.LocalidadID
	existente.BarrioID = nuevosDatos.BarrioID
	existente.ZonaID = nuevosDatos.ZonaID
	existente.Direccion = nuevosDatos.Direccion
	existente.FechaNacimiento = nuevosDatos.FechaNacimiento
	existente.Genero = nuevosDatos.Genero
	existente.Profesion = nuevosDatos.Profesion
	existente.NombreCoordinador = nuevosDatos.NombreCoordinador
	existente.NombreLider = nuevosDatos.NombreLider
	existente.CuotaMercadeo = nuevosDatos.CuotaMercadeo
	existente.CuotaImpacto = nuevosDatos.CuotaImpacto
	existente.CuotaVotoCautivo = nuevosDatos.CuotaVotoCautivo

	return db.Save(&existente).Error
}

// Eliminar es una operación manual; la importación nunca borra registros.
func (r *repositoryImpl) Eliminar(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&Persona{}, "id = ?", id).Error
}
