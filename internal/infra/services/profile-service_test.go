package services

import (
	"context"
	"testing"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/domain/interfaces/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_HashesPasswordAndNormalizesEmail(t *testing.T) {
	profiles := newProfileService(t)

	p, err := profiles.Register(context.Background(), dto.RegisterRequest{
		FullName: "  Ravi Kumar ",
		Email:    "Ravi@Example.COM",
		Password: "hunter22",
		Age:      41,
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", p.Email)
	assert.Equal(t, "Ravi Kumar", p.FullName)
	assert.Equal(t, entities.DefaultLanguage, p.PreferredLanguage)
	assert.NotEqual(t, "hunter22", p.PasswordHash)
	assert.NotEmpty(t, p.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	profiles := newProfileService(t)
	base := dto.RegisterRequest{FullName: "Ravi", Email: "ravi@example.com", Password: "hunter22"}

	cases := map[string]func(r *dto.RegisterRequest){
		"bad email":      func(r *dto.RegisterRequest) { r.Email = "not-an-email" },
		"missing name":   func(r *dto.RegisterRequest) { r.FullName = " " },
		"short password": func(r *dto.RegisterRequest) { r.Password = "abc" },
		"negative age":   func(r *dto.RegisterRequest) { r.Age = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := base
			mutate(&req)
			_, err := profiles.Register(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	req := base
	req.PreferredLanguage = "fr"
	_, err := profiles.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	profiles := newProfileService(t)
	registerAsha(t, profiles, "en", "")

	_, err := profiles.Register(context.Background(), dto.RegisterRequest{FullName: "Other", Email: "ASHA@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	profiles := newProfileService(t)
	registerAsha(t, profiles, "hi", "")

	res, err := profiles.Login(context.Background(), dto.LoginRequest{Email: "Asha@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, testUser, res.Profile.Email)

	user, err := profiles.Tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, testUser, user)

	_, err = profiles.Login(context.Background(), dto.LoginRequest{Email: testUser, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = profiles.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	profiles := newProfileService(t)
	registerAsha(t, profiles, "en", "")

	history := "asthma, hypertension"
	mobile := " +919800000001 "
	p, err := profiles.Update(context.Background(), testUser, dto.UpdateProfileRequest{MedicalHistory: &history, MobileNumber: &mobile})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", p.FullName)
	assert.Equal(t, history, p.MedicalHistory)
	assert.Equal(t, "+919800000001", p.MobileNumber)

	blank := ""
	_, err = profiles.Update(context.Background(), testUser, dto.UpdateProfileRequest{FullName: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = profiles.Update(context.Background(), "ghost@example.com", dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetPreferredLanguage(t *testing.T) {
	profiles := newProfileService(t)
	registerAsha(t, profiles, "en", "")

	p, err := profiles.SetPreferredLanguage(context.Background(), testUser, "ml")
	require.NoError(t, err)
	assert.EqualValues(t, "ml", p.PreferredLanguage)

	_, err = profiles.SetPreferredLanguage(context.Background(), testUser, "xx")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Hour)
	token, err := issuer.Issue(testUser)
	require.NoError(t, err)

	user, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testUser, user)

	_, err = NewTokenIssuer("other", time.Hour).Verify(token)
	assert.Error(t, err)

	expired := NewTokenIssuer("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(testUser)
	require.NoError(t, err)
	_, err = issuer.Verify(old)
	assert.Error(t, err)

	_, err = issuer.Verify("garbage")
	assert.Error(t, err)
}
