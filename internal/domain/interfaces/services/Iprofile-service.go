package Iservices

import (
	"context"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

type IProfileService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (entities.UserProfile, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Get(ctx context.Context, email string) (entities.UserProfile, error)
	Update(ctx context.Context, email string, req dto.UpdateProfileRequest) (entities.UserProfile, error)
	SetPreferredLanguage(ctx context.Context, email string, language entities.LanguageCode) (entities.UserProfile, error)
}

type ITokenIssuer interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
}
