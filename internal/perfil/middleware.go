package perfil

import (
	"net/http"

	"github.com/CampanaDigital/api-personas/internal/auth"
	"gorm.io/gorm"
)

// Columnas de permiso consultables por RequirePermiso. Se interpolan en
// SQL, por eso son constantes del paquete y no entrada del cliente.
const (
	PermisoImportar         = "puede_importar"
	PermisoGestionarEquipos = "puede_gestionar_equipos"
	PermisoVerReportes      = "puede_ver_reportes"
)

// RequirePermiso deja pasar a administradores y a coordinadores cuyo
// perfil tenga activo el permiso indicado. Sin perfil asignado no hay
// permiso.
func RequirePermiso(db *gorm.DB, permiso string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if esAdmin, _ := r.Context().Value(auth.CtxEsAdmin).(bool); esAdmin {
				next.ServeHTTP(w, r)
				return
			}
			usuarioID, _ := r.Context().Value(auth.CtxUsuarioID).(string)

			var permitido bool
			err := db.Raw(
				"SELECT p."+permiso+" FROM coordinadors c JOIN perfils p ON p.id = c.perfil_id WHERE c.id = ?",
				usuarioID,
			).Scan(&permitido).Error
			if err != nil || !permitido {
				http.Error(w, "permiso insuficiente", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
