package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/pkg/jwt"
)

// LoginOKMessage mensaje con el que el backend confirma credenciales válidas.
const LoginOKMessage = "Login exitoso"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase valida credenciales contra el backend y emite el token de sesión.
type AuthUseCase struct {
	gateway repository.AuthGateway
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway repository.AuthGateway, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, jwtCfg: jwtCfg}
}

// Login devuelve ErrInvalidInput si faltan datos y ErrUnauthorized si el backend
// responde con cualquier mensaje distinto de LoginOKMessage.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	msg, err := uc.gateway.Login(ctx, username, in.Password)
	if err != nil {
		return nil, err
	}
	if msg != LoginOKMessage {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Username: username}, nil
}
