package importacion

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/CampanaDigital/api-personas/internal/persona"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// almacenFalso cuenta llamadas y permite inyectar fallos por lote o por
// cédula.
type almacenFalso struct {
	lotes         [][]*persona.Persona
	individuales  []*persona.Persona
	fallarLote    func(numeroLote int) bool
	fallarPersona func(cedula string) bool
}

func (a *almacenFalso) GuardarLote(ctx context.Context, personas []*persona.Persona) error {
	a.lotes = append(a.lotes, personas)
	if a.fallarLote != nil && a.fallarLote(len(a.lotes)) {
		return fmt.Errorf("lote rechazado")
	}
	return nil
}

func (a *almacenFalso) Guardar(ctx context.Context, p *persona.Persona) error {
	a.individuales = append(a.individuales, p)
	if a.fallarPersona != nil && a.fallarPersona(p.Cedula) {
		return fmt.Errorf("cédula duplicada: %s", p.Cedula)
	}
	return nil
}

func filasLimpias(n int) []*Fila {
	filas := make([]*Fila, n)
	for i := 0; i < n; i++ {
		filas[i] = &Fila{
			Indice: i,
			Campos: map[string]interface{}{
				CampoCedula: strconv.Itoa(100000000 + i),
				CampoNombre: "Persona Prueba",
				CampoNumero: i + 1,
			},
		}
	}
	return filas
}

func logSilencioso() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRemitente_LotesExactos(t *testing.T) {
	almacen := &almacenFalso{}
	r := NewRemitente(almacen, logSilencioso())

	resultado := r.Enviar(context.Background(), filasLimpias(250))

	// 250 filas limpias con lotes de 100: exactamente 3 escrituras
	// remotas (100, 100, 50) y ningún reintento individual
	require.Len(t, almacen.lotes, 3)
	require.Len(t, almacen.lotes[0], 100)
	require.Len(t, almacen.lotes[1], 100)
	require.Len(t, almacen.lotes[2], 50)
	require.Empty(t, almacen.individuales)
	require.Equal(t, 250, resultado.Total)
	require.Empty(t, resultado.Errores)
}

func TestRemitente_FalloDeLoteReintentaFilaPorFila(t *testing.T) {
	almacen := &almacenFalso{
		fallarLote: func(n int) bool { return n == 2 },
	}
	r := NewRemitente(almacen, logSilencioso())

	resultado := r.Enviar(context.Background(), filasLimpias(250))

	// el lote fallido se reintenta completo de a una fila
	require.Len(t, almacen.lotes, 3)
	require.Len(t, almacen.individuales, TamanoLote)
	require.Empty(t, resultado.Errores)
}

func TestRemitente_FilaFallidaApareceUnaVezConSuPosicion(t *testing.T) {
	almacen := &almacenFalso{
		fallarLote:    func(n int) bool { return n == 2 },
		fallarPersona: func(cedula string) bool { return cedula == "100000150" },
	}
	r := NewRemitente(almacen, logSilencioso())

	resultado := r.Enviar(context.Background(), filasLimpias(250))

	// la fila 151 (base 1) es la única que agota sus intentos
	require.Len(t, resultado.Errores, 1)
	require.Equal(t, 151, resultado.Errores[0].Posicion)
	require.Contains(t, resultado.Errores[0].Mensaje, "100000150")
	require.Equal(t, 250, resultado.Total)
}

func TestRemitente_ExitoParcialContinuaHastaElFinal(t *testing.T) {
	almacen := &almacenFalso{
		fallarLote:    func(n int) bool { return true },
		fallarPersona: func(cedula string) bool { return cedula == "100000000" },
	}
	r := NewRemitente(almacen, logSilencioso())

	resultado := r.Enviar(context.Background(), filasLimpias(150))

	// todos los lotes fallan: cada fila se intenta individualmente al
	// menos una vez y sólo la primera queda en la lista de errores
	require.Len(t, almacen.individuales, 150)
	require.Len(t, resultado.Errores, 1)
	require.Equal(t, 1, resultado.Errores[0].Posicion)
}
