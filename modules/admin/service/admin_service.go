package service

import (
	"context"
	"strings"

	"gradinvite/core/errors"
	"gradinvite/core/logger"
	"gradinvite/core/session"
	"gradinvite/core/utils"
	"gradinvite/modules/admin/dto"
	"gradinvite/modules/admin/repository"
)

type AdminService struct {
	repo      repository.AdminRepositoryInterface
	authority *session.Authority
}

func NewAdminService(repo repository.AdminRepositoryInterface, authority *session.Authority) *AdminService {
	return &AdminService{
		repo:      repo,
		authority: authority,
	}
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so the response never reveals
// which part failed.
func (s *AdminService) Login(ctx context.Context, req *dto.LoginRequest) (string, *session.Data, *errors.AppError) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return "", nil, errors.NewAppError(errors.ErrInvalidInput, "email and password are required", nil)
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	if !utils.ComparePassword(admin.PasswordHash, req.Password) {
		return "", nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	token, err := s.authority.Issue(admin.ID, admin.Email)
	if err != nil {
		logger.Error("AdminService:Login:Issue:Error:", err)
		return "", nil, errors.NewAppError(errors.ErrInternalServer, "failed to create session", err)
	}

	return token, &session.Data{AdminID: admin.ID, Email: admin.Email}, nil
}

func (s *AdminService) SessionTTL() int {
	return int(s.authority.TTL().Seconds())
}
