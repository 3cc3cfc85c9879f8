package coordinador

import (
	"context"
	"fmt"
	"testing"

	"github.com/CampanaDigital/api-personas/internal/authext"
	"github.com/CampanaDigital/api-personas/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// authFalso registra el orden de las llamadas al proveedor de identidad
// y permite forzar conflictos y fallos.
type authFalso struct {
	llamadas         []string
	conflictoAlCrear bool
	usuarioExistente authext.Usuario
	fallarEliminar   error
}

func (a *authFalso) CrearUsuario(ctx context.Context, email, contrasena string) (string, error) {
	a.llamadas = append(a.llamadas, "crear:"+email)
	if a.conflictoAlCrear {
		return "", authext.ErrConflicto
	}
	return "auth-nuevo", nil
}

func (a *authFalso) BuscarPorEmail(ctx context.Context, email string) (*authext.Usuario, error) {
	a.llamadas = append(a.llamadas, "buscar:"+email)
	u := a.usuarioExistente
	return &u, nil
}

func (a *authFalso) ActualizarContrasena(ctx context.Context, id, contrasena string) error {
	a.llamadas = append(a.llamadas, "contrasena:"+id)
	return nil
}

func (a *authFalso) EliminarUsuario(ctx context.Context, id string) error {
	a.llamadas = append(a.llamadas, "eliminar:"+id)
	return a.fallarEliminar
}

// repositorioFalso sirve un único coordinador en memoria e ignora el *gorm.DB.
type repositorioFalso struct {
	coordinador   *Coordinador
	guardados     []Coordinador
	fallarGuardar error
}

func (r *repositorioFalso) Guardar(db *gorm.DB, c *Coordinador) error {
	if r.fallarGuardar != nil {
		return r.fallarGuardar
	}
	copia := *c
	r.guardados = append(r.guardados, copia)
	return nil
}

func (r *repositorioFalso) BuscarPorID(db *gorm.DB, id uuid.UUID) (*Coordinador, error) {
	if r.coordinador == nil || r.coordinador.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *r.coordinador
	return &copia, nil
}

func (r *repositorioFalso) BuscarPorEmail(db *gorm.DB, email string) (*Coordinador, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *repositorioFalso) ListarTodos(db *gorm.DB) ([]Coordinador, error) {
	return nil, nil
}

func (r *repositorioFalso) Eliminar(db *gorm.DB, id uuid.UUID) error {
	return nil
}

func reconciliadorDePrueba(repo Repository, auth authext.Cliente) *Reconciliador {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Reconciliador{Repositorio: repo, Auth: auth, Log: log}
}

func coordinadorBase() *Coordinador {
	return &Coordinador{
		ID:     uuid.New(),
		Nombre: "Marta",
		Email:  "marta@campana.co",
	}
}

func ptr[T any](v T) *T { return &v }

func TestActualizar_SinCredencialNoTocaIdentidad(t *testing.T) {
	base := coordinadorBase()
	repo := &repositorioFalso{coordinador: base}
	auth := &authFalso{}
	s := reconciliadorDePrueba(repo, auth)

	actualizado, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Nombre:   ptr("Marta Lucía"),
		Telefono: ptr("3001234567"),
	})
	require.NoError(t, err)
	require.Equal(t, "Marta Lucía", actualizado.Nombre)
	require.Equal(t, "3001234567", actualizado.Telefono)
	require.Nil(t, actualizado.AuthUserID)
	require.Empty(t, auth.llamadas)
	require.Len(t, repo.guardados, 1)
}

func TestActualizar_CredencialNuevaCreaIdentidad(t *testing.T) {
	base := coordinadorBase()
	repo := &repositorioFalso{coordinador: base}
	auth := &authFalso{}
	s := reconciliadorDePrueba(repo, auth)

	actualizado, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Contrasena: ptr("secreta123"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"crear:marta@campana.co"}, auth.llamadas)
	require.NotNil(t, actualizado.AuthUserID)
	require.Equal(t, "auth-nuevo", *actualizado.AuthUserID)
	// el hash espejo debe corresponder a la credencial enviada
	require.True(t, utils.VerificarContrasena(actualizado.PasswordHash, "secreta123"))
}

func TestActualizar_ConflictoEnlazaIdentidadExistente(t *testing.T) {
	base := coordinadorBase()
	repo := &repositorioFalso{coordinador: base}
	auth := &authFalso{
		conflictoAlCrear: true,
		usuarioExistente: authext.Usuario{ID: "auth-viejo", Email: base.Email},
	}
	s := reconciliadorDePrueba(repo, auth)

	actualizado, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Contrasena: ptr("secreta123"),
	})
	require.NoError(t, err)
	// exactamente una búsqueda y una actualización de credencial, en orden
	require.Equal(t, []string{
		"crear:marta@campana.co",
		"buscar:marta@campana.co",
		"contrasena:auth-viejo",
	}, auth.llamadas)
	require.Equal(t, "auth-viejo", *actualizado.AuthUserID)
	require.Len(t, repo.guardados, 1)
}

func TestActualizar_IdentidadEnlazadaActualizaDirecto(t *testing.T) {
	base := coordinadorBase()
	base.AuthUserID = ptr("auth-enlazado")
	repo := &repositorioFalso{coordinador: base}
	auth := &authFalso{}
	s := reconciliadorDePrueba(repo, auth)

	_, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Contrasena: ptr("otra456"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"contrasena:auth-enlazado"}, auth.llamadas)
}

func TestActualizar_FalloPrimarioLimpiaIdentidadCreada(t *testing.T) {
	base := coordinadorBase()
	errEscritura := fmt.Errorf("conexión perdida")
	repo := &repositorioFalso{coordinador: base, fallarGuardar: errEscritura}
	auth := &authFalso{}
	s := reconciliadorDePrueba(repo, auth)

	_, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Contrasena: ptr("secreta123"),
	})
	// se devuelve el error original, no el de limpieza
	require.ErrorIs(t, err, errEscritura)
	require.Equal(t, []string{"crear:marta@campana.co", "eliminar:auth-nuevo"}, auth.llamadas)
}

func TestActualizar_FalloDeLimpiezaNoEnmascaraElError(t *testing.T) {
	base := coordinadorBase()
	errEscritura := fmt.Errorf("conexión perdida")
	repo := &repositorioFalso{coordinador: base, fallarGuardar: errEscritura}
	auth := &authFalso{fallarEliminar: fmt.Errorf("proveedor caído")}
	s := reconciliadorDePrueba(repo, auth)

	_, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Contrasena: ptr("secreta123"),
	})
	require.ErrorIs(t, err, errEscritura)
}

func TestActualizar_IdentidadEnlazadaNoSeLimpiaAlFallar(t *testing.T) {
	base := coordinadorBase()
	base.AuthUserID = ptr("auth-enlazado")
	errEscritura := fmt.Errorf("conexión perdida")
	repo := &repositorioFalso{coordinador: base, fallarGuardar: errEscritura}
	auth := &authFalso{}
	s := reconciliadorDePrueba(repo, auth)

	_, err := s.Actualizar(context.Background(), base.ID, ActualizarRequest{
		Contrasena: ptr("otra456"),
	})
	require.ErrorIs(t, err, errEscritura)
	// la identidad preexistente nunca se elimina por compensación
	require.Equal(t, []string{"contrasena:auth-enlazado"}, auth.llamadas)
}
