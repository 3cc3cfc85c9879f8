package importacion

import (
	"context"

	"github.com/CampanaDigital/api-personas/internal/persona"
	"github.com/sirupsen/logrus"
)

// TamanoLote es el tamaño fijo de cada escritura remota.
const TamanoLote = 100

// Almacen es la escritura remota vista por el remitente; la implementa
// el repositorio de personas sobre la base de datos.
type Almacen interface {
	GuardarLote(ctx context.Context, personas []*persona.Persona) error
	Guardar(ctx context.Context, p *persona.Persona) error
}

// ErrorFila registra una fila que no se pudo persistir: posición global
// en base 1, el mensaje crudo del fallo y los datos de la fila.
type ErrorFila struct {
	Posicion int                    `json:"fila"`
	Mensaje  string                 `json:"error"`
	Datos    map[string]interface{} `json:"datos"`
}

// Resultado es el cierre de una corrida: la lista de errores es el
// registro autoritativo de qué filas no quedaron persistidas. El éxito
// parcial es un estado terminal aceptado; no hay rollback de lotes ya
// confirmados.
type Resultado struct {
	Total   int         `json:"total"`
	Errores []ErrorFila `json:"errores"`
}

// Remitente envía filas limpias en lotes secuenciales; ante el fallo de
// un lote reintenta sus filas de a una. Cada fila se intenta al menos
// una vez y el fallo de una no aborta el resto de la corrida.
type Remitente struct {
	Almacen Almacen
	Log     *logrus.Logger
}

func NewRemitente(almacen Almacen, log *logrus.Logger) *Remitente {
	return &Remitente{Almacen: almacen, Log: log}
}

// Enviar procesa las filas ya ordenadas. Los lotes van uno tras otro:
// el lote N sólo sale cuando el N-1 terminó, con éxito o con sus
// reintentos agotados.
func (r *Remitente) Enviar(ctx context.Context, filas []*Fila) Resultado {
	resultado := Resultado{Total: len(filas)}

	for inicio := 0; inicio < len(filas); inicio += TamanoLote {
		fin := inicio + TamanoLote
		if fin > len(filas) {
			fin = len(filas)
		}
		lote := filas[inicio:fin]

		personas := make([]*persona.Persona, len(lote))
		for i, f := range lote {
			personas[i] = f.APersona()
		}

		if err := r.Almacen.GuardarLote(ctx, personas); err == nil {
			continue
		} else {
			r.Log.WithError(err).WithFields(logrus.Fields{
				"desde": inicio + 1,
				"hasta": fin,
			}).Warn("falló el lote, reintentando fila por fila")
		}

		for i, f := range lote {
			if err := r.Almacen.Guardar(ctx, personas[i]); err != nil {
				resultado.Errores = append(resultado.Errores, ErrorFila{
					Posicion: inicio + i + 1,
					Mensaje:  err.Error(),
					Datos:    f.Campos,
				})
			}
		}
	}

	return resultado
}
