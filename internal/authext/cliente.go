// Package authext habla con el servicio de autenticación externo que
// administra las identidades de acceso. El registro primario sólo guarda
// el id opaco de la identidad; la identidad externa es la autoritativa.
package authext

import (
	"context"
	"errors"
)

// ErrConflicto indica que ya existe una identidad para ese correo.
var ErrConflicto = errors.New("la identidad ya existe")

// Usuario es la representación mínima de una identidad externa.
type Usuario struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Cliente define las operaciones administrativas sobre identidades.
// Se construye explícitamente en el arranque y se inyecta donde haga
// falta; no hay un handle global.
type Cliente interface {
	CrearUsuario(ctx context.Context, email, contrasena string) (string, error)
	BuscarPorEmail(ctx context.Context, email string) (*Usuario, error)
	ActualizarContrasena(ctx context.Context, id, contrasena string) error
	EliminarUsuario(ctx context.Context, id string) error
}
