// Package auth implementa el login con email y password contra el repositorio
// de usuarios, emitiendo un JWT con el rol para el middleware RBAC.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/usecase"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/repository"
	"inventario-pos/pkg/jwt"
)

// Config parámetros de emisión del token.
type Config struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	userRepo repository.UserRepository
	cfg      Config
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, cfg Config) *UseCase {
	return &UseCase{userRepo: userRepo, cfg: cfg}
}

// Login valida credenciales y devuelve el token con los datos del usuario.
// Credenciales inválidas y usuario inexistente responden igual.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
