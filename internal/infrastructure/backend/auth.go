package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// AuthGateway implementa repository.AuthGateway sobre POST /users/login.
type AuthGateway struct {
	c *Client
}

var _ repository.AuthGateway = (*AuthGateway)(nil)

func NewAuthGateway(c *Client) *AuthGateway { return &AuthGateway{c: c} }

// Login devuelve el campo mensaje del backend; la interpretación queda en el caso de uso.
func (g *AuthGateway) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	err := g.c.do(ctx, http.MethodPost, "/users/login", loginRequest{NombreUsuario: username, ClaveUsuario: password}, &out)
	var se *StatusError
	if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnauthorized, se.Body)
	}
	if err != nil {
		return "", err
	}
	return out.Mensaje, nil
}
