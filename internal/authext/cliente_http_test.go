package authext

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func clienteDePrueba(t *testing.T, manejador http.HandlerFunc) *ClienteHTTP {
	t.Helper()
	srv := httptest.NewServer(manejador)
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClienteHTTP(srv.URL, "clave-servicio", log)
}

func TestCrearUsuario_DevuelveID(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/users", r.URL.Path)
		require.Equal(t, "Bearer clave-servicio", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ana@campana.co", req["email"])

		json.NewEncoder(w).Encode(Usuario{ID: "abc-123", Email: req["email"]})
	})

	id, err := c.CrearUsuario(context.Background(), "ana@campana.co", "secreta")
	require.NoError(t, err)
	require.Equal(t, "abc-123", id)
}

func TestCrearUsuario_ConflictoSeTraduce(t *testing.T) {
	for _, estado := range []int{http.StatusConflict, http.StatusUnprocessableEntity} {
		c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(estado)
		})
		_, err := c.CrearUsuario(context.Background(), "ana@campana.co", "secreta")
		require.ErrorIs(t, err, ErrConflicto)
	}
}

func TestBuscarPorEmail_UsaElQuery(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ana+lista@campana.co", r.URL.Query().Get("email"))
		json.NewEncoder(w).Encode([]Usuario{{ID: "abc-123", Email: "ana+lista@campana.co"}})
	})

	u, err := c.BuscarPorEmail(context.Background(), "ana+lista@campana.co")
	require.NoError(t, err)
	require.Equal(t, "abc-123", u.ID)
}

func TestBuscarPorEmail_SinResultados(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Usuario{})
	})

	_, err := c.BuscarPorEmail(context.Background(), "nadie@campana.co")
	require.Error(t, err)
}

func TestActualizarContrasena_ErrorDelServicio(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/users/abc-123", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.ActualizarContrasena(context.Background(), "abc-123", "nueva")
	require.Error(t, err)
}

func TestEliminarUsuario(t *testing.T) {
	var eliminado string
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		eliminado = r.URL.Path
	})

	require.NoError(t, c.EliminarUsuario(context.Background(), "abc-123"))
	require.Equal(t, "/admin/users/abc-123", eliminado)
}
