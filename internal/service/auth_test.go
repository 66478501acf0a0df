package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"

	coreauth "toyshop/internal/core/auth"
	"toyshop/internal/domain"
	"toyshop/internal/repo"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glog.Default.LogMode(glog.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	jwter := &coreauth.JWTer{Secret: []byte("test_secret"), Issuer: "toyshop", TTL: time.Hour}
	return NewAuthService(repo.NewUserRepo(db), jwter)
}

func TestBootstrapThenLogin(t *testing.T) {
	svc := newTestAuth(t)

	created, err := svc.Bootstrap("Owner@Example.com", "ChangeMe123!")
	require.NoError(t, err)
	assert.True(t, created)

	// 第二次不再建号
	created, err = svc.Bootstrap("owner@example.com", "ChangeMe123!")
	require.NoError(t, err)
	assert.False(t, created)

	// 邮箱大小写不敏感
	tok, err := svc.Login("OWNER@EXAMPLE.COM", "ChangeMe123!")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	claims, err := svc.JWT.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestAuth(t)
	_, err := svc.Bootstrap("owner@example.com", "ChangeMe123!")
	require.NoError(t, err)

	_, err = svc.Login("owner@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// 查无此人和密码不对是同一个错误
	_, err = svc.Login("ghost@example.com", "ChangeMe123!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
