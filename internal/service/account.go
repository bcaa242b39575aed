package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/repository"
)

var (
	collegeUIDRegex = regexp.MustCompile(`^\d{2}[A-Za-z]{2}[A-Za-z]{3,4}\d{4}$`)
	mobileRegex     = regexp.MustCompile(`^\d{10}$`)
)

// SignupProfile is the sender-supplied registration payload.
type SignupProfile struct {
	FullName          string
	CollegeUID        string
	MobileNumber      string
	InstagramUsername string
}

// AccountDirectory registers senders and authenticates them. Two protocols
// coexist: the direct collegeUid+mobile pair (legacy) and the two-phase
// email OTP (canonical). The router exposes one of them per the configured
// auth mode; both share this interface and implementation.
type AccountDirectory interface {
	// Direct mode
	Signup(ctx context.Context, profile SignupProfile) (*model.User, error)
	Login(ctx context.Context, collegeUID, mobile string) (*model.User, error)
	// OTP mode
	SendSignupOTP(ctx context.Context, email string) error
	VerifySignupOTP(ctx context.Context, email, code string, profile SignupProfile) (*model.User, error)
	SendLoginOTP(ctx context.Context, email string) error
	VerifyLoginOTP(ctx context.Context, email, code string) (*model.User, error)
}

type accountDirectory struct {
	users repository.UserRepository
	otp   OTPProvider
}

// NewAccountDirectory creates the account directory service.
func NewAccountDirectory(users repository.UserRepository, otp OTPProvider) AccountDirectory {
	return &accountDirectory{users: users, otp: otp}
}

func normalizeProfile(p SignupProfile) (SignupProfile, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.CollegeUID = strings.ToUpper(strings.TrimSpace(p.CollegeUID))
	p.MobileNumber = strings.TrimSpace(p.MobileNumber)
	p.InstagramUsername = strings.TrimPrefix(strings.TrimSpace(p.InstagramUsername), "@")

	if p.FullName == "" {
		return p, apperrors.NewValidationError("full_name", "full name is required")
	}
	if !collegeUIDRegex.MatchString(p.CollegeUID) {
		return p, apperrors.NewValidationError("college_uid", "college UID should be like 24UPHYS0077")
	}
	if !mobileRegex.MatchString(p.MobileNumber) {
		return p, apperrors.NewValidationError("mobile_number", "enter a valid 10-digit mobile number")
	}
	if p.InstagramUsername == "" {
		return p, apperrors.NewValidationError("instagram_username", "instagram username is required")
	}
	return p, nil
}

// Signup registers a sender without any possession proof (legacy direct
// mode). The college UID is the uniqueness key.
func (s *accountDirectory) Signup(ctx context.Context, profile SignupProfile) (*model.User, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	if err := s.checkCollegeUIDFree(ctx, profile.CollegeUID); err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:          profile.FullName,
		CollegeUID:        profile.CollegeUID,
		MobileNumber:      profile.MobileNumber,
		InstagramUsername: profile.InstagramUsername,
	}
	if err := s.createUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// createUser inserts the row and maps a losing race on the college UID
// unique index to the same conflict error the pre-insert check reports.
func (s *accountDirectory) createUser(ctx context.Context, user *model.User) error {
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("this college UID is %w", apperrors.ErrAlreadyRegistered)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login authenticates by the exact (collegeUID, mobile) pair.
func (s *accountDirectory) Login(ctx context.Context, collegeUID, mobile string) (*model.User, error) {
	collegeUID = strings.ToUpper(strings.TrimSpace(collegeUID))
	mobile = strings.TrimSpace(mobile)

	user, err := s.users.FindByCollegeUIDAndMobile(ctx, collegeUID, mobile)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// SendSignupOTP dispatches a code to the address the registrant claims to
// possess. No local account state is created yet.
func (s *accountDirectory) SendSignupOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	return s.otp.SendCode(ctx, email)
}

// VerifySignupOTP validates the code, re-checks both uniqueness constraints
// and inserts the verified user. The first violation found is the one
// reported.
func (s *accountDirectory) VerifySignupOTP(ctx context.Context, email, code string, profile SignupProfile) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.otp.VerifyCode(ctx, email, code); err != nil {
		return nil, err
	}

	profile, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}
	if err := s.checkCollegeUIDFree(ctx, profile.CollegeUID); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:          profile.FullName,
		Email:             email,
		CollegeUID:        profile.CollegeUID,
		MobileNumber:      profile.MobileNumber,
		InstagramUsername: profile.InstagramUsername,
		Verified:          true,
	}
	if err := s.createUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SendLoginOTP asserts an account exists before dispatching a code, so
// non-users cannot use the login flow as a free send primitive.
func (s *accountDirectory) SendLoginOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return s.otp.SendCode(ctx, email)
}

// VerifyLoginOTP validates the code then loads the account by email.
func (s *accountDirectory) VerifyLoginOTP(ctx context.Context, email, code string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.otp.VerifyCode(ctx, email, code); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *accountDirectory) checkCollegeUIDFree(ctx context.Context, uid string) error {
	existing, err := s.users.FindByCollegeUID(ctx, uid)
	if err == nil && existing != nil {
		return fmt.Errorf("this college UID is %w", apperrors.ErrAlreadyRegistered)
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check college uid: %w", err)
	}
	return nil
}

func (s *accountDirectory) checkEmailFree(ctx context.Context, email string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return fmt.Errorf("this email is %w", apperrors.ErrAlreadyRegistered)
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}
