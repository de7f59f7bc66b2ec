package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/pkg/utils"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	recordRepo *repository.MedicalRecordRepository
	auditRepo  *repository.AuditRepository
}

func NewAuthService(
	userRepo *repository.UserRepository,
	recordRepo *repository.MedicalRecordRepository,
	auditRepo *repository.AuditRepository,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		recordRepo: recordRepo,
		auditRepo:  auditRepo,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            models.Role
	FirstName       string
	LastName        string
	Phone           string
	BirthDate       *time.Time
}

// Login authenticates an active user by email and password
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil || !user.Active {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	response, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_login", fmt.Sprintf("User %s logged in", email))

	return response, nil
}

// Register creates a new user account. Patient registrants get an empty
// medical record created alongside; a failure there does not fail the
// registration itself.
func (s *AuthService) Register(in RegisterInput) (*LoginResponse, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RolePatient
	}
	if !in.Role.Valid() || in.Role == models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	taken, err := s.userRepo.EmailTaken(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		Active:       true,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if user.Role == models.RolePatient {
		record := &models.MedicalRecord{
			PatientID:         user.ID,
			BloodType:         "Not specified",
			Allergies:         "Not specified",
			ChronicConditions: "Not specified",
		}
		// Best effort: a missing record can be created later and must not
		// block registration.
		_ = s.recordRepo.CreateRecord(record)
	}

	response, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_registration", fmt.Sprintf("User %s registered", in.Email))

	return response, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}
