package services

import (
	"context"
	"fmt"
	"time"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/utils"
	fbauth "rentride/pkg/auth"
	"rentride/pkg/logger"
	"rentride/pkg/oauth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthResponse, error)
	FirebaseLogin(ctx context.Context, idToken string) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	Logout(ctx context.Context, userID primitive.ObjectID, token string) error

	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error)

	IsTokenRevoked(ctx context.Context, token string) bool
}

type authService struct {
	userRepo         interfaces.UserRepository
	cache            CacheService
	googleProvider   oauth.OAuthProvider
	firebaseVerifier FirebaseVerifier
	jwtSecret        string
	logger           *logger.Logger
}

type FirebaseVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.FirebaseIdentity, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PhotoURL string `json:"photo_url"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	cache CacheService,
	googleProvider oauth.OAuthProvider,
	firebaseVerifier FirebaseVerifier,
	jwtSecret string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		cache:            cache,
		googleProvider:   googleProvider,
		firebaseVerifier: firebaseVerifier,
		jwtSecret:        jwtSecret,
		logger:           logger,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existingUser, _ := s.userRepo.GetByEmail(ctx, request.Email)
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := s.hashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         utils.SanitizeString(request.Name),
		Email:        request.Email,
		Phone:        request.Phone,
		Address:      request.Address,
		Password:     hashedPassword,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
		AuthProvider: models.AuthProviderEmail,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User registered successfully")

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, ErrBadCredentials
	}

	if user.AuthProvider != models.AuthProviderEmail || user.Password == "" {
		return nil, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		s.logger.WithField("email", request.Email).Warn("Failed login attempt")
		return nil, ErrBadCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, ErrForbidden
	}

	now := time.Now()
	s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login_at": now})
	user.LastLoginAt = &now

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*AuthResponse, error) {
	if s.googleProvider == nil {
		return nil, fmt.Errorf("google sign-in is not configured")
	}

	info, err := s.googleProvider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredentials, err)
	}

	return s.socialLogin(ctx, models.AuthProviderGoogle, info.ID, info.Email, info.Name, info.Picture)
}

func (s *authService) FirebaseLogin(ctx context.Context, idToken string) (*AuthResponse, error) {
	if s.firebaseVerifier == nil {
		return nil, fmt.Errorf("firebase sign-in is not configured")
	}

	identity, err := s.firebaseVerifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredentials, err)
	}

	return s.socialLogin(ctx, models.AuthProviderFirebase, identity.UID, identity.Email, identity.Name, identity.Picture)
}

// socialLogin finds the account for a verified external identity, creating
// it on first sign-in. Accounts registered with the same email under the
// password provider stay separate.
func (s *authService) socialLogin(ctx context.Context, provider models.AuthProvider, socialID, email, name, picture string) (*AuthResponse, error) {
	user, err := s.userRepo.GetBySocialID(ctx, string(provider), socialID)
	if err != nil {
		user = &models.User{
			Name:         name,
			Email:        email,
			PhotoURL:     picture,
			Role:         models.UserRoleUser,
			Status:       models.UserStatusActive,
			AuthProvider: provider,
			SocialID:     socialID,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			s.logger.WithError(err).Error("Failed to create social user")
			return nil, err
		}

		s.logger.WithUserID(user.ID).WithField("provider", provider).Info("Social user registered")
	}

	if user.Status == models.UserStatusSuspended {
		return nil, ErrForbidden
	}

	now := time.Now()
	s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login_at": now})
	user.LastLoginAt = &now

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	if s.IsTokenRevoked(ctx, refreshToken) {
		return nil, ErrBadCredentials
	}

	tokens, err := utils.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredentials, err)
	}

	return tokens, nil
}

func (s *authService) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	// Deny-list the presented token until it would have expired anyway.
	key := utils.CacheRevokedPrefix + token
	if err := s.cache.Set(ctx, key, true, utils.JWTRefreshTokenTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to revoke token")
	}

	s.logger.WithUserID(userID).Info("User logged out")
	return nil
}

func (s *authService) IsTokenRevoked(ctx context.Context, token string) bool {
	exists, err := s.cache.Exists(ctx, utils.CacheRevokedPrefix+token)
	if err != nil {
		return false
	}
	return exists
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}

	if request.Name != "" {
		if !utils.IsValidName(request.Name) {
			return nil, fmt.Errorf("%w: invalid name", ErrInvalidInput)
		}
		updates["name"] = utils.SanitizeString(request.Name)
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}
	if request.Address != "" {
		updates["address"] = request.Address
	}
	if request.PhotoURL != "" {
		if !utils.IsValidURL(request.PhotoURL) {
			return nil, fmt.Errorf("%w: invalid photo URL", ErrInvalidInput)
		}
		updates["photo_url"] = request.PhotoURL
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
