package repository

import "context"

// AuthGateway valida credenciales contra el backend. Devuelve el mensaje tal como llega.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (message string, err error)
}
