package jwt

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "vedicroots-auth",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "admin", "org-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.OrganizationID != "org-1" {
		t.Errorf("期望 OrganizationID=org-1，实际=%s", claims.OrganizationID)
	}
	if claims.Issuer != "vedicroots-auth" {
		t.Errorf("期望 Issuer=vedicroots-auth，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: -time.Minute,
	})

	token, err := m.GenerateAccessToken("user-1", "admin", "org-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-for-testing-xx",
		Issuer:         "vedicroots-auth",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, _ := other.GenerateAccessToken("user-1", "admin", "org-1")
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	m := newTestManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "someone-else",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, _ := other.GenerateAccessToken("user-1", "admin", "org-1")
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_SubjectFallbackAndMissingOrg(t *testing.T) {
	m := newTestManager()
	secret := []byte("test-secret-key-for-unit-testing-2026")
	now := time.Now()

	// 只有 sub、没有 user_id：应回填 UserID
	withSub := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, Claims{
		Role:           "teacher",
		OrganizationID: "org-1",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   "teacher-9",
			Issuer:    "vedicroots-auth",
			ExpiresAt: jwtv5.NewNumericDate(now.Add(time.Minute)),
		},
	})
	signed, _ := withSub.SignedString(secret)
	claims, err := m.ParseToken(signed)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.UserID != "teacher-9" {
		t.Errorf("期望 UserID=teacher-9，实际=%s", claims.UserID)
	}

	// 缺少组织 ID：拒绝
	noOrg := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, Claims{
		UserID: "user-1",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "vedicroots-auth",
			ExpiresAt: jwtv5.NewNumericDate(now.Add(time.Minute)),
		},
	})
	signed, _ = noOrg.SignedString(secret)
	if _, err := m.ParseToken(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
