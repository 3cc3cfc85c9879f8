package persona

import (
	"encoding/json"
	"net/http"

	"github.com/CampanaDigital/api-personas/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler encapsula DB y repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logrus.Logger
}

// NewHandler retorna un handler inicializado
func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Log:        log,
	}
}

// CrearPersona registra una persona desde el formulario manual
func (h *Handler) CrearPersona(w http.ResponseWriter, r *http.Request) {
	var p Persona
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if p.Cedula == "" || p.Nombre == "" {
		http.Error(w, "cédula y nombre son obligatorios", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Guardar(h.DB, &p); err != nil {
		h.Log.WithError(err).Error("error al guardar persona")
		http.Error(w, "error al guardar persona", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListarPersonas retorna todos los registros
func (h *Handler) ListarPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("error al listar personas")
		http.Error(w, "error al listar personas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(personas)
}

// BuscarPorID retorna una persona por su ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	obj, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "persona no encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// ActualizarPersona modifica un registro existente
func (h *Handler) ActualizarPersona(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	var datos Persona
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Actualizar(h.DB, id, &datos); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "persona no encontrada", http.StatusNotFound)
			return
		}
		h.Log.WithError(err).Error("error al actualizar persona")
		http.Error(w, "error al actualizar persona", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("persona actualizada con éxito"))
}

// EliminarPersona borra un registro; sólo vía formulario manual
func (h *Handler) EliminarPersona(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	if err := h.Repository.Eliminar(h.DB, id); err != nil {
		h.Log.WithError(err).Error("error al eliminar persona")
		http.Error(w, "error al eliminar persona", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("persona eliminada con éxito"))
}
