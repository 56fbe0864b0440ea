package services

import (
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/smartresult/backend/internal/config"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account not active")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Principal roles carried in token claims
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	params *argon2id.Params
	log    zerolog.Logger
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Token types embedded in claims so access and refresh tokens cannot stand
// in for each other.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims identifies the authenticated principal. AdminID is the owning
// admin scope: for admins it equals PrincipalID, for students it is the
// admin the student belongs to.
type Claims struct {
	PrincipalID uuid.UUID `json:"principal_id"`
	AdminID     uuid.UUID `json:"admin_id"`
	Role        string    `json:"role"`
	TokenType   string    `json:"token_type"`
	jwt.RegisteredClaims
}

func NewAuthService(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *AuthService {
	params := &argon2id.Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}

	return &AuthService{
		db:     db,
		cfg:    cfg,
		params: params,
		log:    log.With().Str("component", "auth_service").Logger(),
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, s.params)
}

func (s *AuthService) VerifyPassword(hash, password string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}

// RegisterAdmin creates a new admin account with a hashed password
func (s *AuthService) RegisterAdmin(email, password, schoolName string) (*models.Admin, error) {
	var existing models.Admin
	err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Email:        email,
		PasswordHash: hash,
		SchoolName:   schoolName,
		IsActive:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", admin.ID.String()).Msg("admin registered")
	return admin, nil
}

// LoginAdmin authenticates an admin by email and password
func (s *AuthService) LoginAdmin(email, password string) (*TokenPair, *models.Admin, error) {
	var admin models.Admin
	if err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !admin.IsActive {
		return nil, nil, ErrAccountNotActive
	}

	match, err := s.VerifyPassword(admin.PasswordHash, password)
	if err != nil || !match {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(admin.ID, admin.ID, RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	return tokens, &admin, nil
}

// LoginStudent authenticates a student by register number and date of birth
func (s *AuthService) LoginStudent(registerNo, dob string) (*TokenPair, *models.Student, error) {
	var student models.Student
	if err := s.db.Where("register_no = ? AND dob = ?", registerNo, dob).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(student.ID, student.AdminID, RoleStudent)
	if err != nil {
		return nil, nil, err
	}
	return tokens, &student, nil
}

func (s *AuthService) generateTokenPair(principalID, adminID uuid.UUID, role string) (*TokenPair, error) {
	accessClaims := &Claims{
		PrincipalID: principalID,
		AdminID:     adminID,
		Role:        role,
		TokenType:   tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   principalID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := &Claims{
		PrincipalID: principalID,
		AdminID:     adminID,
		Role:        role,
		TokenType:   tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.RefreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   principalID.String(),
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	rt := &models.RefreshToken{
		PrincipalID: principalID,
		Role:        role,
		Token:       refreshTokenString,
		ExpiresAt:   time.Now().Add(s.cfg.JWT.RefreshExpiry),
		Revoked:     false,
	}
	if err := s.db.Create(rt).Error; err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.cfg.JWT.AccessExpiry.Seconds()),
	}, nil
}

// RefreshTokens rotates a refresh token: the old token is revoked and a new
// pair is issued for the same principal.
func (s *AuthService) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	var rt models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&rt).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if rt.Revoked || time.Now().After(rt.ExpiresAt) {
		return nil, ErrTokenRevoked
	}

	// Principal must still exist and be active
	if claims.Role == RoleAdmin {
		var admin models.Admin
		if err := s.db.First(&admin, "id = ?", claims.PrincipalID).Error; err != nil {
			return nil, ErrInvalidToken
		}
		if !admin.IsActive {
			return nil, ErrAccountNotActive
		}
	} else {
		var student models.Student
		if err := s.db.First(&student, "id = ?", claims.PrincipalID).Error; err != nil {
			return nil, ErrInvalidToken
		}
	}

	s.db.Model(&rt).Update("revoked", true)

	return s.generateTokenPair(claims.PrincipalID, claims.AdminID, claims.Role)
}

// VerifyToken validates an access token and returns its claims. Refresh
// tokens are rejected here so they cannot be replayed on the API surface.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *AuthService) RevokeToken(refreshToken string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token = ?", refreshToken).
		Update("revoked", true).Error
}
