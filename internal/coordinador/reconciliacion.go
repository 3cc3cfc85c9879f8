package coordinador

import (
	"context"
	"errors"
	"fmt"

	"github.com/CampanaDigital/api-personas/internal/authext"
	"github.com/CampanaDigital/api-personas/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ActualizarRequest es el conjunto parcial de campos aceptado por el
// endpoint de actualización. Contrasena, si viene, dispara el flujo de
// reconciliación con la identidad externa.
type ActualizarRequest struct {
	Nombre       *string    `json:"nombre,omitempty"`
	Apellido     *string    `json:"apellido,omitempty"`
	Telefono     *string    `json:"telefono,omitempty"`
	Email        *string    `json:"email,omitempty"`
	UsuarioID    *uuid.UUID `json:"usuarioId,omitempty"`
	ReferenciaID *uuid.UUID `json:"referenciaId,omitempty"`
	PerfilID     *uint      `json:"perfilId,omitempty"`
	Contrasena   *string    `json:"contrasena,omitempty"`
}

// Reconciliador resuelve la actualización de un coordinador contra su
// identidad externa: crea, enlaza o actualiza la identidad antes de
// escribir el registro primario, con limpieza compensatoria si la
// escritura primaria falla después de haber creado la identidad.
type Reconciliador struct {
	DB          *gorm.DB
	Repositorio Repository
	Auth        authext.Cliente
	Log         *logrus.Logger
}

func NewReconciliador(db *gorm.DB, auth authext.Cliente, log *logrus.Logger) *Reconciliador {
	return &Reconciliador{
		DB:          db,
		Repositorio: NewRepository(),
		Auth:        auth,
		Log:         log,
	}
}

// Actualizar aplica la máquina de estados de credenciales:
//   - sin identidad enlazada + credencial nueva: crear; si el correo ya
//     existe, buscarla y actualizar su contraseña, luego enlazar.
//   - identidad enlazada + credencial nueva: actualizar contraseña directo.
//   - sin credencial: sólo campos no credenciales.
//
// Si el paso de identidad falla, nada del registro primario se toca.
func (s *Reconciliador) Actualizar(ctx context.Context, id uuid.UUID, req ActualizarRequest) (*Coordinador, error) {
	existente, err := s.Repositorio.BuscarPorID(s.DB, id)
	if err != nil {
		return nil, err
	}

	conCredencial := req.Contrasena != nil && *req.Contrasena != ""
	identidadCreada := false

	if conCredencial {
		email := existente.Email
		if req.Email != nil && *req.Email != "" {
			email = *req.Email
		}

		if existente.AuthUserID == nil {
			authID, errCrear := s.Auth.CrearUsuario(ctx, email, *req.Contrasena)
			switch {
			case errors.Is(errCrear, authext.ErrConflicto):
				// Ya existe una identidad para ese correo: enlazarla y
				// actualizar su credencial en vez de duplicar.
				u, errBuscar := s.Auth.BuscarPorEmail(ctx, email)
				if errBuscar != nil {
					return nil, fmt.Errorf("identidad en conflicto pero no encontrada: %w", errBuscar)
				}
				if errPass := s.Auth.ActualizarContrasena(ctx, u.ID, *req.Contrasena); errPass != nil {
					return nil, fmt.Errorf("no se pudo actualizar la credencial externa: %w", errPass)
				}
				authID = u.ID
			case errCrear != nil:
				return nil, fmt.Errorf("no se pudo crear la identidad externa: %w", errCrear)
			default:
				identidadCreada = true
			}
			existente.AuthUserID = &authID
		} else {
			if errPass := s.Auth.ActualizarContrasena(ctx, *existente.AuthUserID, *req.Contrasena); errPass != nil {
				return nil, fmt.Errorf("no se pudo actualizar la credencial externa: %w", errPass)
			}
		}

		hash, errHash := utils.HashContrasena(*req.Contrasena)
		if errHash != nil {
			return nil, errHash
		}
		existente.PasswordHash = hash
	}

	if req.Nombre != nil {
		existente.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		existente.Apellido = *req.Apellido
	}
	if req.Telefono != nil {
		existente.Telefono = *req.Telefono
	}
	if req.Email != nil && *req.Email != "" {
		existente.Email = *req.Email
	}
	if req.UsuarioID != nil {
		existente.UsuarioID = req.UsuarioID
	}
	if req.ReferenciaID != nil {
		existente.ReferenciaID = req.ReferenciaID
	}
	if req.PerfilID != nil {
		existente.PerfilID = req.PerfilID
	}

	if errGuardar := s.Repositorio.Guardar(s.DB, existente); errGuardar != nil {
		// Acción compensatoria, no two-phase commit: si el proceso se
		// interrumpe antes de llegar aquí la identidad puede quedar huérfana.
		if identidadCreada && existente.AuthUserID != nil {
			if errLimpieza := s.Auth.EliminarUsuario(ctx, *existente.AuthUserID); errLimpieza != nil {
				s.Log.WithError(errLimpieza).WithField("authUserId", *existente.AuthUserID).
					Error("falló la limpieza de la identidad recién creada")
			}
		}
		return nil, errGuardar
	}

	return existente, nil
}
