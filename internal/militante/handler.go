package militante

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

func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Log:        log,
	}
}

// CrearMilitante trata POST /militantes
func (h *Handler) CrearMilitante(w http.ResponseWriter, r *http.Request) {
	var m Militante
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if m.PersonaID == uuid.Nil {
		http.Error(w, "el campo 'personaId' es obligatorio", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Guardar(h.DB, &m); err != nil {
		h.Log.WithError(err).Error("error al guardar militante")
		http.Error(w, "error al guardar militante", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// ListarMilitantes trata GET /militantes; admite ?coordinador={uuid}
func (h *Handler) ListarMilitantes(w http.ResponseWriter, r *http.Request) {
	var (
		militantes []Militante
		err        error
	)
	if c := r.URL.Query().Get("coordinador"); c != "" {
		if !utils.EsUUIDValido(c) {
			http.Error(w, "coordinador inválido", http.StatusBadRequest)
			return
		}
		id, _ := uuid.Parse(c)
		militantes, err = h.Repository.ListarPorCoordinador(h.DB, id)
	} else {
		militantes, err = h.Repository.ListarTodos(h.DB)
	}
	if err != nil {
		h.Log.WithError(err).Error("error al listar militantes")
		http.Error(w, "error al listar militantes", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(militantes)
}

// BuscarPorID trata GET /militantes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	m, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "militante no encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(m)
}

// ActualizarMilitante trata PUT /militantes/{id}
func (h *Handler) ActualizarMilitante(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	existente, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "militante no encontrado", http.StatusNotFound)
		return
	}

	var datos Militante
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	existente.CoordinadorID = datos.CoordinadorID
	existente.Tipo = datos.Tipo

	if err := h.Repository.Guardar(h.DB, existente); err != nil {
		h.Log.WithError(err).Error("error al actualizar militante")
		http.Error(w, "error al actualizar militante", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("militante actualizado con éxito"))
}

// EliminarMilitante trata DELETE /militantes/{id}
func (h *Handler) EliminarMilitante(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	if err := h.Repository.Eliminar(h.DB, id); err != nil {
		h.Log.WithError(err).Error("error al eliminar militante")
		http.Error(w, "error al eliminar militante", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("militante eliminado con éxito"))
}

// SincronizarCuotas trata POST /militantes/sincronizar; recopia los
// compromisos desde la base de personas.
func (h *Handler) SincronizarCuotas(w http.ResponseWriter, r *http.Request) {
	cambiados, err := h.Repository.SincronizarCuotas(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("error al sincronizar cuotas")
		http.Error(w, "error al sincronizar cuotas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"actualizados": cambiados})
}
