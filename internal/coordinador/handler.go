package coordinador

import (
	"encoding/json"
	"net/http"

	"github.com/CampanaDigital/api-personas/internal/auth"
	"github.com/CampanaDigital/api-personas/internal/authext"
	"github.com/CampanaDigital/api-personas/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`
}

type crearCoordinadorRequest struct {
	Nombre       string     `json:"nombre"`
	Apellido     string     `json:"apellido"`
	Telefono     string     `json:"telefono"`
	Email        string     `json:"email"`
	Contrasena   string     `json:"contrasena"`
	UsuarioID    *uuid.UUID `json:"usuarioId"`
	ReferenciaID *uuid.UUID `json:"referenciaId"`
	PerfilID     *uint      `json:"perfilId"`
	EsAdmin      bool       `json:"esAdmin"`
}

// Handler encapsula DB, repository y el reconciliador de credenciales
type Handler struct {
	DB            *gorm.DB
	Repository    Repository
	Reconciliador *Reconciliador
	Log           *logrus.Logger
}

// NewHandler retorna un handler inicializado
func NewHandler(db *gorm.DB, authCliente authext.Cliente, log *logrus.Logger) *Handler {
	return &Handler{
		DB:            db,
		Repository:    NewRepository(),
		Reconciliador: NewReconciliador(db, authCliente, log),
		Log:           log,
	}
}

// Login genera un JWT para credenciales válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciales inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarContrasena(user.PasswordHash, req.Contrasena) {
		http.Error(w, "contraseña incorrecta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID.String(), user.EsAdmin)
	if err != nil {
		http.Error(w, "error al generar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// CrearCoordinador registra un coordinador nuevo
func (h *Handler) CrearCoordinador(w http.ResponseWriter, r *http.Request) {
	var req crearCoordinadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Nombre == "" {
		http.Error(w, "nombre y email son obligatorios", http.StatusBadRequest)
		return
	}

	c := Coordinador{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Telefono:     req.Telefono,
		Email:        req.Email,
		UsuarioID:    req.UsuarioID,
		ReferenciaID: req.ReferenciaID,
		PerfilID:     req.PerfilID,
		EsAdmin:      req.EsAdmin,
	}

	if req.Contrasena != "" {
		hash, err := utils.HashContrasena(req.Contrasena)
		if err != nil {
			http.Error(w, "error al procesar contraseña", http.StatusInternalServerError)
			return
		}
		c.PasswordHash = hash
	}

	if err := h.Repository.Guardar(h.DB, &c); err != nil {
		h.Log.WithError(err).Error("error al guardar coordinador")
		http.Error(w, "error al guardar coordinador", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ListarCoordinadores retorna todos los coordinadores
func (h *Handler) ListarCoordinadores(w http.ResponseWriter, r *http.Request) {
	coordinadores, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		h.Log.WithError(err).Error("error al listar coordinadores")
		http.Error(w, "error al listar coordinadores", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(coordinadores)
}

// BuscarPorID retorna un coordinador; con ?incluir_credencial=1 expone
// el espejo del hash para uso operativo.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	obj, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "coordinador no encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Query().Get("incluir_credencial") == "1" {
		type conCredencial struct {
			*Coordinador
			PasswordHash string `json:"passwordHash"`
		}
		json.NewEncoder(w).Encode(conCredencial{Coordinador: obj, PasswordHash: obj.PasswordHash})
		return
	}
	json.NewEncoder(w).Encode(obj)
}

// ActualizarCoordinador aplica un conjunto parcial de campos; si viene
// una credencial nueva corre el flujo de reconciliación completo.
func (h *Handler) ActualizarCoordinador(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	var req ActualizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	actualizado, err := h.Reconciliador.Actualizar(r.Context(), id, req)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "coordinador no encontrado", http.StatusNotFound)
			return
		}
		h.Log.WithError(err).WithField("coordinadorId", id).Error("error al actualizar coordinador")
		http.Error(w, "error al actualizar coordinador: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(actualizado)
}

// EliminarCoordinador remueve el registro
func (h *Handler) EliminarCoordinador(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	if !utils.EsUUIDValido(idStr) {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	id, _ := uuid.Parse(idStr)

	if err := h.Repository.Eliminar(h.DB, id); err != nil {
		h.Log.WithError(err).Error("error al eliminar coordinador")
		http.Error(w, "error al eliminar coordinador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("coordinador eliminado con éxito"))
}
