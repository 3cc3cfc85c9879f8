package importacion

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSesionNoEncontrada = errors.New("sesión de importación no encontrada")

// Sesion es el estado en memoria de una carga: la vista previa que el
// operador edita antes de confirmar. Pertenece en exclusiva a esa carga
// y se descarta al confirmar o cancelar.
type Sesion struct {
	ID         uuid.UUID
	Archivo    string
	Filas      []*Fila
	CreadaEn   time.Time
	Confirmada bool
	Resultado  *Resultado
}

// Registro guarda las sesiones activas. Es el único estado mutable
// compartido del módulo, de ahí el mutex.
type Registro struct {
	mu       sync.Mutex
	sesiones map[uuid.UUID]*Sesion
}

func NewRegistro() *Registro {
	return &Registro{sesiones: make(map[uuid.UUID]*Sesion)}
}

func (r *Registro) Crear(archivo string, filas []*Fila) *Sesion {
	s := &Sesion{
		ID:       uuid.New(),
		Archivo:  archivo,
		Filas:    filas,
		CreadaEn: time.Now(),
	}
	r.mu.Lock()
	r.sesiones[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registro) Obtener(id uuid.UUID) (*Sesion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sesiones[id]
	if !ok {
		return nil, ErrSesionNoEncontrada
	}
	return s, nil
}

func (r *Registro) Eliminar(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sesiones, id)
	r.mu.Unlock()
}
