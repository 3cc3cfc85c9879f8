package notificacion

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// ImportacionFinalizada se difunde al terminar una corrida de importación
// para que cualquier vista interesada se refresque.
type ImportacionFinalizada struct {
	Archivo string `json:"archivo"`
	Total   int    `json:"total"`
	Errores int    `json:"errores"`
}

// Bus es un difusor en proceso, secuencial; los suscriptores no deben
// bloquear.
type Bus struct {
	mu   sync.Mutex
	subs []func(ImportacionFinalizada)
	log  *logrus.Logger
}

func NewBus(log *logrus.Logger) *Bus {
	return &Bus{log: log}
}

func (b *Bus) Suscribir(fn func(ImportacionFinalizada)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Bus) Publicar(evt ImportacionFinalizada) {
	b.mu.Lock()
	subs := make([]func(ImportacionFinalizada), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.WithField("panico", r).Error("suscriptor de notificación falló")
				}
			}()
			fn(evt)
		}()
	}
}
