package persona

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Persona representa un registro de la base de personas de la campaña.
// La cédula es la llave natural para deduplicar en la importación; el
// NumeroHoja lo asigna la planilla de origen, nunca el almacén.
type Persona struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	NumeroHoja *int `json:"numeroHoja,omitempty"`

	TipoDocumento string `gorm:"size:10" json:"tipoDocumento"`
	Cedula        string `gorm:"uniqueIndex;not null" json:"cedula"`
	Nombre        string `gorm:"not null" json:"nombre"`
	Apellido      string `json:"apellido"`

	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`

	// Ubicación por referencia o texto libre cuando no hay catálogo
	CiudadID    *uint  `json:"ciudadId,omitempty"`
	LocalidadID *uint  `json:"localidadId,omitempty"`
	BarrioID    *uint  `json:"barrioId,omitempty"`
	ZonaID      *uint  `json:"zonaId,omitempty"`
	Direccion   string `json:"direccion"`

	FechaNacimiento *time.Time `json:"fechaNacimiento,omitempty"`
	Genero          string     `gorm:"size:20" json:"genero"`
	Profesion       string     `json:"profesion"`

	// Nombres de afiliación tal como vienen de la planilla
	NombreCoordinador string `json:"nombreCoordinador"`
	NombreLider       string `json:"nombreLider"`

	// Compromisos: la Persona es la fuente de verdad de estas cuotas
	CuotaMercadeo    int `gorm:"default:0" json:"cuotaMercadeo"`
	CuotaImpacto     int `gorm:"default:0" json:"cuotaImpacto"`
	CuotaVotoCautivo int `gorm:"default:0" json:"cuotaVotoCautivo"`
}

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
