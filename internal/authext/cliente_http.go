package authext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// ClienteHTTP implementa Cliente contra el API administrativo del
// servicio de autenticación (estilo GoTrue: /admin/users).
type ClienteHTTP struct {
	BaseURL    string
	ServiceKey string
	HTTP       *http.Client
	Log        *logrus.Logger
}

func NewClienteHTTP(baseURL, serviceKey string, log *logrus.Logger) *ClienteHTTP {
	return &ClienteHTTP{
		BaseURL:    baseURL,
		ServiceKey: serviceKey,
		HTTP:       http.DefaultClient,
		Log:        log,
	}
}

type crearUsuarioRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type actualizarContrasenaRequest struct {
	Password string `json:"password"`
}

func (c *ClienteHTTP) hacer(ctx context.Context, metodo, ruta string, cuerpo interface{}) (*http.Response, error) {
	var lector io.Reader
	if cuerpo != nil {
		b, err := json.Marshal(cuerpo)
		if err != nil {
			return nil, err
		}
		lector = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, metodo, c.BaseURL+ruta, lector)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	if cuerpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.HTTP.Do(req)
}

// CrearUsuario registra una identidad nueva; un 409/422 del servicio se
// traduce a ErrConflicto para que el llamador resuelva la reconciliación.
func (c *ClienteHTTP) CrearUsuario(ctx context.Context, email, contrasena string) (string, error) {
	resp, err := c.hacer(ctx, http.MethodPost, "/admin/users", crearUsuarioRequest{Email: email, Password: contrasena})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity {
		return "", ErrConflicto
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("crear identidad: estado %d", resp.StatusCode)
	}

	var u Usuario
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", err
	}
	return u.ID, nil
}

// BuscarPorEmail localiza la identidad preexistente por correo.
func (c *ClienteHTTP) BuscarPorEmail(ctx context.Context, email string) (*Usuario, error) {
	resp, err := c.hacer(ctx, http.MethodGet, "/admin/users?email="+url.QueryEscape(email), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("buscar identidad: estado %d", resp.StatusCode)
	}

	var usuarios []Usuario
	if err := json.NewDecoder(resp.Body).Decode(&usuarios); err != nil {
		return nil, err
	}
	if len(usuarios) == 0 {
		return nil, fmt.Errorf("no existe identidad para %s", email)
	}
	return &usuarios[0], nil
}

func (c *ClienteHTTP) ActualizarContrasena(ctx context.Context, id, contrasena string) error {
	resp, err := c.hacer(ctx, http.MethodPut, "/admin/users/"+id, actualizarContrasenaRequest{Password: contrasena})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("actualizar contraseña: estado %d", resp.StatusCode)
	}
	return nil
}

func (c *ClienteHTTP) EliminarUsuario(ctx context.Context, id string) error {
	resp, err := c.hacer(ctx, http.MethodDelete, "/admin/users/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("eliminar identidad: estado %d", resp.StatusCode)
	}
	return nil
}
