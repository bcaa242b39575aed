package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"premam/internal/auth"
	"premam/internal/config"
	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/repository"
)

const bcryptCost = 10

// AdminService owns the moderation credential path. Single-admin and
// multi-tenant deployments share it: the only difference is where the
// passcode check happens (config pair vs. stored creator row).
type AdminService interface {
	CreateCreator(ctx context.Context, displayName, slug, passcode string) (*model.Creator, string, error)
	GetCreatorBySlug(ctx context.Context, slug string) (*model.Creator, error)
	Login(ctx context.Context, slug, passcode string) (string, *model.Creator, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token, refreshing its idle expiry.
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

type adminService struct {
	cfg      *config.Config
	creators repository.CreatorRepository
	sessions auth.SessionStoreInterface
}

// NewAdminService creates the admin/creator service.
func NewAdminService(cfg *config.Config, creators repository.CreatorRepository, sessions auth.SessionStoreInterface) AdminService {
	return &adminService{cfg: cfg, creators: creators, sessions: sessions}
}

// CreateCreator registers a new recipient page and auto-issues a session,
// matching the original sign-up flow. Multi-tenant mode only.
func (s *adminService) CreateCreator(ctx context.Context, displayName, slug, passcode string) (*model.Creator, string, error) {
	if s.cfg.DeployMode == config.DeploySingle {
		return nil, "", apperrors.NewValidationError("", "creator signup is disabled in this deployment")
	}

	displayName = strings.TrimSpace(displayName)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if displayName == "" {
		return nil, "", apperrors.NewValidationError("display_name", "display name is required")
	}
	if slug == "" {
		return nil, "", apperrors.NewValidationError("slug", "slug is required")
	}
	if len(passcode) < 4 {
		return nil, "", apperrors.NewValidationError("passcode", "passcode must be at least 4 characters")
	}

	if existing, err := s.creators.FindBySlug(ctx, slug); err == nil && existing != nil {
		return nil, "", apperrors.ErrSlugTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check slug: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash passcode: %w", err)
	}

	creator := &model.Creator{
		DisplayName:  displayName,
		Slug:         slug,
		PasscodeHash: string(hash),
	}
	if err := s.creators.Create(ctx, creator); err != nil {
		// The slug unique index decides races the pre-insert check missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrSlugTaken
		}
		return nil, "", fmt.Errorf("create creator: %w", err)
	}

	token, err := s.sessions.Create(ctx, auth.Session{CreatorID: creator.ID, DisplayName: creator.DisplayName})
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return creator, token, nil
}

// GetCreatorBySlug is the public profile lookup. The passcode hash never
// leaves the model's JSON projection.
func (s *adminService) GetCreatorBySlug(ctx context.Context, slug string) (*model.Creator, error) {
	creator, err := s.creators.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCreatorNotFound
		}
		return nil, fmt.Errorf("find creator: %w", err)
	}
	return creator, nil
}

// Login checks the credential pair and issues a session token. Wrong slug
// and wrong passcode are indistinguishable to the caller.
func (s *adminService) Login(ctx context.Context, slug, passcode string) (string, *model.Creator, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	if s.cfg.DeployMode == config.DeploySingle {
		if s.cfg.AdminPasscode == "" {
			return "", nil, fmt.Errorf("admin passcode not configured")
		}
		slugOK := subtle.ConstantTimeCompare([]byte(slug), []byte(strings.ToLower(s.cfg.AdminSlug))) == 1
		passOK := subtle.ConstantTimeCompare([]byte(passcode), []byte(s.cfg.AdminPasscode)) == 1
		if !slugOK || !passOK {
			return "", nil, apperrors.ErrUnauthorized
		}
	}

	creator, err := s.creators.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperrors.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("find creator: %w", err)
	}

	if s.cfg.DeployMode != config.DeploySingle {
		if bcrypt.CompareHashAndPassword([]byte(creator.PasscodeHash), []byte(passcode)) != nil {
			return "", nil, apperrors.ErrUnauthorized
		}
	}

	token, err := s.sessions.Create(ctx, auth.Session{CreatorID: creator.ID, DisplayName: creator.DisplayName})
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return token, creator, nil
}

// Logout drops the session. Best effort: a already-expired token is fine.
func (s *adminService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves the token or reports Unauthorized.
func (s *adminService) Authenticate(ctx context.Context, token string) (*auth.Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return session, nil
}
