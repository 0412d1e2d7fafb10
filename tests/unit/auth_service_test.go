package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"tailpair/internal/config"
	"tailpair/internal/domain"
	"tailpair/internal/repository"
	"tailpair/internal/service/auth"
	"tailpair/tests/mocks"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.RegisterInput{
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	t.Run("Success Defaults To Adopter Role", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		mockEmailService := new(mocks.EmailService)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, mockEmailService, authTestConfig())

		mockUserRepo.On("ExistsByUsername", ctx, "ada").Return(false, nil).Once()
		mockUserRepo.On("ExistsByEmail", ctx, "ada@example.com").Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "ada" &&
				u.Role == string(domain.RoleAdopter) &&
				u.Enabled &&
				u.PasswordHash != "s3cretpass"
		})).Return(nil).Once()
		mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockEmailService.On("SendWelcome", mock.Anything, "ada@example.com", "Ada").Return(nil).Maybe()

		user, tokens, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Username Taken", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.EmailService), authTestConfig())

		mockUserRepo.On("ExistsByUsername", ctx, "ada").Return(true, nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Email Taken", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.EmailService), authTestConfig())

		mockUserRepo.On("ExistsByUsername", ctx, "ada").Return(false, nil).Once()
		mockUserRepo.On("ExistsByEmail", ctx, "ada@example.com").Return(true, nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailTaken)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Username:     "ada",
		PasswordHash: string(hash),
		Role:         string(domain.RoleAdopter),
		Enabled:      true,
	}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.EmailService), authTestConfig())

		mockUserRepo.On("GetByUsername", ctx, "ada").Return(user, nil).Once()
		mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Username: "ada", Password: "s3cretpass"})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.EmailService), authTestConfig())

		mockUserRepo.On("GetByUsername", ctx, "ada").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "ada", Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Username", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.EmailService), authTestConfig())

		mockUserRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "ghost", Password: "whatever"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Disabled Account", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.EmailService), authTestConfig())

		disabled := *user
		disabled.Enabled = false
		mockUserRepo.On("GetByUsername", ctx, "ada").Return(&disabled, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "ada", Password: "s3cretpass"})

		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	sessionID := uuid.New()

	user := &domain.User{ID: userID, Username: "ada", Role: string(domain.RoleAdopter), Enabled: true}

	t.Run("Success Rotates Session", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.EmailService), authTestConfig())

		session := &repository.Session{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		mockSessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockSessionRepo.On("Revoke", ctx, sessionID).Return(nil).Once()
		mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "some-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, "some-refresh-token", tokens.RefreshToken)
		mockSessionRepo.AssertExpectations(t)
	})

	t.Run("Expired Session", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, new(mocks.EmailService), authTestConfig())

		expired := &repository.Session{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		mockSessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(expired, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "stale-token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, tokens)
	})

	t.Run("Revoked Session", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, new(mocks.EmailService), authTestConfig())

		now := time.Now()
		revoked := &repository.Session{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: now.Add(time.Hour),
			RevokedAt: &now,
		}
		mockSessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(revoked, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "revoked-token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, tokens)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, new(mocks.EmailService), authTestConfig())

		mockSessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "unknown-token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, tokens)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(mocks.UserRepository)
	mockSessionRepo := new(mocks.SessionRepository)
	svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.EmailService), authTestConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Username:     "ada",
		PasswordHash: string(hash),
		Role:         string(domain.RoleShelterAdmin),
		Enabled:      true,
	}

	mockUserRepo.On("GetByUsername", ctx, "ada").Return(user, nil).Once()
	mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Username: "ada", Password: "s3cretpass"})
	assert.NoError(t, err)

	t.Run("Valid Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(tokens.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "ada", claims.Username)
		assert.Equal(t, string(domain.RoleShelterAdmin), claims.Role)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not.a.jwt")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		otherCfg := authTestConfig()
		otherCfg.JWTSecret = "different-secret"
		otherSvc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.EmailService), otherCfg)

		claims, err := otherSvc.ValidateAccessToken(tokens.AccessToken)

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Revokes Session", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, new(mocks.EmailService), authTestConfig())

		session := &repository.Session{ID: sessionID, UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
		mockSessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		mockSessionRepo.On("Revoke", ctx, sessionID).Return(nil).Once()

		err := svc.Logout(ctx, "some-refresh-token")

		assert.NoError(t, err)
		mockSessionRepo.AssertExpectations(t)
	})

	t.Run("Unknown Token Is A NoOp", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, new(mocks.EmailService), authTestConfig())

		mockSessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		err := svc.Logout(ctx, "unknown-token")

		assert.NoError(t, err)
		mockSessionRepo.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})
}
