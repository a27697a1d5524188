// Package user provides the application layer for user management
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/user"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// UserService implements user management use cases
type UserService struct {
	userRepo  outbound.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	jwtSecret string,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger.Named("user-service"),
	}
}

// RegisterCommand contains user registration data
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginCommand contains user login data
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse contains authentication response data
type AuthResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int     `json:"expires_in"`
}

// JWTClaims represents JWT token claims
type JWTClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error) {
	s.logger.Info("Registering new user", zap.String("email", cmd.Email))

	existingUser, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err == nil && existingUser != nil {
		return nil, apperrors.NewEmailAlreadyExistsError(cmd.Email)
	}

	newUser, err := user.NewUser(cmd.Email, cmd.FullName, cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	accessToken, err := s.generateToken(newUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User registered successfully",
		zap.String("user_id", newUser.ID().String()),
		zap.String("email", newUser.Email()),
	)

	return &AuthResponse{
		User:        s.entityToDTO(newUser),
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   3600,
	}, nil
}

// Login authenticates a user
func (s *UserService) Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error) {
	s.logger.Info("User login attempt", zap.String("email", cmd.Email))

	userEntity, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	if err := userEntity.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", cmd.Email))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	if !userEntity.IsActive() {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	userEntity.RecordLogin()
	if err := s.userRepo.Update(ctx, userEntity); err != nil {
		s.logger.Error("Failed to update last login", zap.Error(err))
	}

	accessToken, err := s.generateToken(userEntity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully",
		zap.String("user_id", userEntity.ID().String()),
		zap.String("email", userEntity.Email()),
	)

	return &AuthResponse{
		User:        s.entityToDTO(userEntity),
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   3600,
	}, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	userEntity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUserNotFoundError(userID.String())
	}

	dto := s.entityToDTO(userEntity)
	return &dto, nil
}

// ValidateToken validates a JWT token and returns user claims
func (s *UserService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// Helper methods

// generateToken generates a signed access token
func (s *UserService) generateToken(userEntity *user.User) (string, error) {
	now := time.Now()

	claims := &JWTClaims{
		UserID: userEntity.ID(),
		Email:  userEntity.Email(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userEntity.ID().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// entityToDTO converts user entity to DTO
func (s *UserService) entityToDTO(userEntity *user.User) UserDTO {
	return UserDTO{
		ID:        userEntity.ID(),
		Email:     userEntity.Email(),
		FullName:  userEntity.FullName(),
		IsActive:  userEntity.IsActive(),
		CreatedAt: userEntity.CreatedAt(),
	}
}
