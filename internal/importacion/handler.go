package importacion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/CampanaDigital/api-personas/internal/notificacion"
	"github.com/CampanaDigital/api-personas/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxTamanoArchivo = 20 << 20 // 20 MiB

// Handler expone la carga, la vista previa editable y la confirmación.
type Handler struct {
	Registro  *Registro
	Remitente *Remitente
	Bus       *notificacion.Bus
	Log       *logrus.Logger
}

func NewHandler(almacen Almacen, bus *notificacion.Bus, log *logrus.Logger) *Handler {
	return &Handler{
		Registro:  NewRegistro(),
		Remitente: NewRemitente(almacen, log),
		Bus:       bus,
		Log:       log,
	}
}

type vistaPrevia struct {
	ID          uuid.UUID    `json:"id"`
	Archivo     string       `json:"archivo"`
	Filas       []*Fila      `json:"filas"`
	Incidencias []Incidencia `json:"incidencias"`
}

func (h *Handler) responderVistaPrevia(w http.ResponseWriter, s *Sesion) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vistaPrevia{
		ID:          s.ID,
		Archivo:     s.Archivo,
		Filas:       s.Filas,
		Incidencias: ValidarFilas(s.Filas),
	})
}

// CargarArchivo trata POST /importaciones: decodifica la planilla y abre
// la sesión de vista previa.
func (h *Handler) CargarArchivo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxTamanoArchivo); err != nil {
		http.Error(w, "archivo inválido", http.StatusBadRequest)
		return
	}
	archivo, cabecera, err := r.FormFile("archivo")
	if err != nil {
		http.Error(w, "falta el archivo", http.StatusBadRequest)
		return
	}
	defer archivo.Close()

	filas, err := LeerPlanilla(archivo)
	if err != nil {
		if errors.Is(err, ErrArchivoVacio) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Log.WithError(err).WithField("archivo", cabecera.Filename).Error("error al leer planilla")
		http.Error(w, "no se pudo leer la planilla", http.StatusBadRequest)
		return
	}

	s := h.Registro.Crear(cabecera.Filename, filas)
	h.Log.WithFields(logrus.Fields{
		"archivo": cabecera.Filename,
		"filas":   len(filas),
		"sesion":  s.ID,
	}).Info("planilla cargada")

	w.WriteHeader(http.StatusCreated)
	h.responderVistaPrevia(w, s)
}

func (h *Handler) sesionDeRuta(w http.ResponseWriter, r *http.Request) *Sesion {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID de sesión inválido", http.StatusBadRequest)
		return nil
	}
	id, _ := uuid.Parse(idStr)
	s, err := h.Registro.Obtener(id)
	if err != nil {
		http.Error(w, "sesión no encontrada", http.StatusNotFound)
		return nil
	}
	return s
}

func (h *Handler) filaDeRuta(w http.ResponseWriter, r *http.Request, s *Sesion) *Fila {
	indice, err := strconv.Atoi(mux.Vars(r)["indice"])
	if err != nil {
		http.Error(w, "índice inválido", http.StatusBadRequest)
		return nil
	}
	for _, f := range s.Filas {
		if f.Indice == indice {
			return f
		}
	}
	http.Error(w, "fila no encontrada", http.StatusNotFound)
	return nil
}

// EditarFila trata PATCH /importaciones/{id}/filas/{indice}: superpone
// las correcciones manuales del operador.
func (h *Handler) EditarFila(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	f := h.filaDeRuta(w, r, s)
	if f == nil {
		return
	}

	var cambios map[string]string
	if err := json.NewDecoder(r.Body).Decode(&cambios); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	f.AplicarEdicion(cambios)
	h.responderVistaPrevia(w, s)
}

// OmitirFila trata POST /importaciones/{id}/filas/{indice}/omitir
func (h *Handler) OmitirFila(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	f := h.filaDeRuta(w, r, s)
	if f == nil {
		return
	}

	var req struct {
		Omitida *bool `json:"omitida"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Omitida == nil {
		f.Omitida = true // sin cuerpo, omitir es la acción
	} else {
		f.Omitida = *req.Omitida
	}
	h.responderVistaPrevia(w, s)
}

// OmitirInvalidas trata POST /importaciones/{id}/omitir-invalidas: marca
// de un golpe todas las filas con incidencias.
func (h *Handler) OmitirInvalidas(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	for _, inc := range ValidarFilas(s.Filas) {
		for _, f := range s.Filas {
			if f.Indice == inc.Fila {
				f.Omitida = true
			}
		}
	}
	h.responderVistaPrevia(w, s)
}

// Confirmar trata POST /importaciones/{id}/confirmar: revalida contra el
// estado vigente de las filas, envía por lotes y difunde el evento de
// cierre. Desde aquí ya no hay cancelación: la corrida llega hasta el
// final.
func (h *Handler) Confirmar(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	if s.Confirmada {
		http.Error(w, "la importación ya fue confirmada", http.StatusConflict)
		return
	}

	// revalidación contra las filas posiblemente editadas
	incidencias := ValidarFilas(s.Filas)
	invalidas := make(map[int][]string, len(incidencias))
	for _, inc := range incidencias {
		invalidas[inc.Fila] = inc.Errores
	}

	limpias := make([]*Fila, 0, len(s.Filas))
	resultado := Resultado{}
	posicion := 0
	for _, f := range s.Filas {
		if f.Omitida {
			continue
		}
		posicion++
		if errores, mal := invalidas[f.Indice]; mal {
			resultado.Errores = append(resultado.Errores, ErrorFila{
				Posicion: posicion,
				Mensaje:  strings.Join(errores, "; "),
				Datos:    f.Campos,
			})
			continue
		}
		limpias = append(limpias, f)
	}

	envio := h.Remitente.Enviar(r.Context(), limpias)
	resultado.Total = posicion
	resultado.Errores = append(resultado.Errores, envio.Errores...)

	s.Confirmada = true
	s.Resultado = &resultado

	h.Bus.Publicar(notificacion.ImportacionFinalizada{
		Archivo: s.Archivo,
		Total:   resultado.Total,
		Errores: len(resultado.Errores),
	})
	h.Log.WithFields(logrus.Fields{
		"archivo": s.Archivo,
		"total":   resultado.Total,
		"errores": len(resultado.Errores),
	}).Info("importación finalizada")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resultado)
}

// Cancelar trata DELETE /importaciones/{id}: descarta la vista previa.
// Sólo tiene efecto antes de la confirmación.
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	h.Registro.Eliminar(s.ID)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("importación cancelada"))
}

// ExportarErrores trata GET /importaciones/{id}/errores.csv
func (h *Handler) ExportarErrores(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	if s.Resultado == nil {
		http.Error(w, "la importación aún no fue confirmada", http.StatusConflict)
		return
	}
	contenido, err := ReporteErrores(s.Resultado.Errores)
	if err != nil {
		http.Error(w, "error al generar reporte", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="errores.csv"`)
	w.Write(contenido)
}

// ExportarValidacion trata GET /importaciones/{id}/validacion.csv
func (h *Handler) ExportarValidacion(w http.ResponseWriter, r *http.Request) {
	s := h.sesionDeRuta(w, r)
	if s == nil {
		return
	}
	contenido, err := ReporteValidacion(ValidarFilas(s.Filas), s.Filas)
	if err != nil {
		http.Error(w, "error al generar reporte", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="validacion.csv"`)
	w.Write(contenido)
}
