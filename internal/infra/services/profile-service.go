package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/domain/interfaces/repository"
	repoconstants "health-assistant/internal/domain/interfaces/repository/constants"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ProfileService owns user profiles, keyed by lower-cased email.
type ProfileService struct {
	Repository repository.Repository[entities.UserProfile]
	Tokens     Iservices.ITokenIssuer
	Logger     *logger.Logger
	now        func() time.Time
}

func NewProfileService(repo repository.Repository[entities.UserProfile], tokens Iservices.ITokenIssuer, logger *logger.Logger) *ProfileService {
	return &ProfileService{Repository: repo, Tokens: tokens, Logger: logger, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (th *ProfileService) Register(ctx context.Context, req dto.RegisterRequest) (entities.UserProfile, error) {
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return entities.UserProfile{}, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return entities.UserProfile{}, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if len(req.Password) < 6 {
		return entities.UserProfile{}, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if req.Age < 0 {
		return entities.UserProfile{}, fmt.Errorf("%w: age cannot be negative", ErrValidation)
	}

	language := req.PreferredLanguage
	if language == "" {
		language = entities.DefaultLanguage
	}
	if !entities.IsSupportedLanguage(language) {
		return entities.UserProfile{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	now := th.now()
	profile := entities.UserProfile{
		Email:             email,
		FullName:          strings.TrimSpace(req.FullName),
		PasswordHash:      string(hash),
		Age:               req.Age,
		Gender:            req.Gender,
		MedicalHistory:    req.MedicalHistory,
		PreferredLanguage: language,
		MobileNumber:      strings.TrimSpace(req.MobileNumber),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := th.Repository.Create(ctx, repoconstants.PROFILE_COLLECTION, profile)
	if err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			th.Logger.Error(fmt.Sprintf("Failed to create profile: %v", err))
		}
		return entities.UserProfile{}, err
	}
	th.Logger.Info("Profile registered", logrus.Fields{"user": email})
	return created, nil
}

func (th *ProfileService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	profile, err := th.Repository.FindByID(ctx, repoconstants.PROFILE_COLLECTION, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := th.Tokens.Issue(profile.Email)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{Token: token, Profile: profile}, nil
}

func (th *ProfileService) Get(ctx context.Context, email string) (entities.UserProfile, error) {
	return th.Repository.FindByID(ctx, repoconstants.PROFILE_COLLECTION, normalizeEmail(email))
}

func (th *ProfileService) Update(ctx context.Context, email string, req dto.UpdateProfileRequest) (entities.UserProfile, error) {
	profile, err := th.Get(ctx, email)
	if err != nil {
		return entities.UserProfile{}, err
	}

	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return entities.UserProfile{}, fmt.Errorf("%w: full name cannot be empty", ErrValidation)
		}
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Age != nil {
		if *req.Age < 0 {
			return entities.UserProfile{}, fmt.Errorf("%w: age cannot be negative", ErrValidation)
		}
		profile.Age = *req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.MedicalHistory != nil {
		profile.MedicalHistory = *req.MedicalHistory
	}
	if req.MobileNumber != nil {
		profile.MobileNumber = strings.TrimSpace(*req.MobileNumber)
	}
	profile.UpdatedAt = th.now()

	return th.Repository.Update(ctx, repoconstants.PROFILE_COLLECTION, profile.Email, profile)
}

func (th *ProfileService) SetPreferredLanguage(ctx context.Context, email string, language entities.LanguageCode) (entities.UserProfile, error) {
	if !entities.IsSupportedLanguage(language) {
		return entities.UserProfile{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	profile, err := th.Get(ctx, email)
	if err != nil {
		return entities.UserProfile{}, err
	}
	profile.PreferredLanguage = language
	profile.UpdatedAt = th.now()
	return th.Repository.Update(ctx, repoconstants.PROFILE_COLLECTION, profile.Email, profile)
}
