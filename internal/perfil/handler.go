package perfil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB y repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// CrearPerfil trata POST /perfiles
func (h *Handler) CrearPerfil(w http.ResponseWriter, r *http.Request) {
	var p Perfil
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if p.Nombre == "" {
		http.Error(w, "el campo 'nombre' es obligatorio", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Crear(h.DB, &p); err != nil {
		http.Error(w, "error al crear perfil", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListarPerfiles trata GET /perfiles
func (h *Handler) ListarPerfiles(w http.ResponseWriter, r *http.Request) {
	perfiles, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "error al listar perfiles", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(perfiles)
}

// BuscarPorID trata GET /perfiles/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "perfil no encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// EliminarPerfil trata DELETE /perfiles/{id}
func (h *Handler) EliminarPerfil(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Eliminar(h.DB, uint(id)); err != nil {
		http.Error(w, "error al eliminar perfil", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("perfil eliminado con éxito"))
}
