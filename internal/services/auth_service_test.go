package services

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/smartresult/backend/internal/config"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Admin{}, &models.Student{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		Argon2: config.Argon2Config{
			Memory:      8 * 1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
	}
	return NewAuthService(db, cfg, zerolog.Nop()), db
}

func TestTokenTypes(t *testing.T) {
	svc, db := newAuthTestService(t)

	admin := models.Admin{Email: "head@school.test", PasswordHash: "x", SchoolName: "Demo", IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}

	pair, err := svc.generateTokenPair(admin.ID, admin.ID, RoleAdmin)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	t.Run("Access token verifies", func(t *testing.T) {
		claims, err := svc.VerifyToken(pair.AccessToken)
		if err != nil {
			t.Fatalf("verify access: %v", err)
		}
		if claims.PrincipalID != admin.ID || claims.Role != RoleAdmin {
			t.Errorf("claims = %+v, want admin principal", claims)
		}
	})

	t.Run("Refresh token rejected as access token", func(t *testing.T) {
		if _, err := svc.VerifyToken(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(refresh) err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Access token rejected for refresh", func(t *testing.T) {
		if _, err := svc.RefreshTokens(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("RefreshTokens(access) err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Refresh rotates and revokes", func(t *testing.T) {
		next, err := svc.RefreshTokens(pair.RefreshToken)
		if err != nil {
			t.Fatalf("rotate: %v", err)
		}
		if next.AccessToken == "" || next.RefreshToken == pair.RefreshToken {
			t.Errorf("rotation returned reused tokens")
		}
		if _, err := svc.RefreshTokens(pair.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("reusing rotated token err = %v, want ErrTokenRevoked", err)
		}
	})
}
