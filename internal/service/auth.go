package service

import (
	"strings"

	"toyshop/internal/core/auth"
	"toyshop/internal/domain"
	"toyshop/pkg/utils"
)

type AuthService struct {
	Users domain.UserRepository
	JWT   *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{Users: users, JWT: jwter}
}

// Login 校验凭据并签发会话 token。查无此人和密码不对返回同一个错误。
func (s *AuthService) Login(email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", domain.ErrValidation
	}
	u, err := s.Users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return s.JWT.Issue(u.ID, u.Email, u.Role)
}

// Bootstrap 没有管理员时建一个默认的；已存在时什么都不做
func (s *AuthService) Bootstrap(email, password string) (created bool, err error) {
	u, err := s.Users.FindByEmail(email)
	if err != nil {
		return false, err
	}
	if u != nil {
		return false, nil
	}
	err = s.Users.Create(&domain.User{
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         "admin",
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
