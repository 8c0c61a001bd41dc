// Package account orchestrates registration and login: field validation,
// upload handling, duplicate detection, credential verification and the
// brute-force lockout, in that order.
package account

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accountportal/internal/database"
	"accountportal/internal/platform/user"
	"accountportal/internal/validate"
	"accountportal/pkg/utils"
)

// UserStore is the slice of the credential store the workflow needs.
type UserStore interface {
	Create(u *database.User) error
	GetUserByEmail(email string) (*database.User, error)
	FindConflicts(email, phone string) (emailTaken, phoneTaken bool, err error)
}

// AttemptLedger records login attempts and answers lockout queries.
type AttemptLedger interface {
	Record(email, ipAddress string, success bool) error
	IsLockedOut(email string) (bool, error)
}

// Uploader stores a profile photo and returns its relative reference.
type Uploader interface {
	Process(file *multipart.FileHeader) (string, error)
}

type Options struct {
	PasswordPolicy validate.PasswordPolicy
	PhotoRequired  bool
	LockoutWindow  time.Duration
}

type Service struct {
	users    UserStore
	attempts AttemptLedger
	uploads  Uploader
	opts     Options
}

func NewService(users UserStore, attempts AttemptLedger, uploads Uploader, opts Options) *Service {
	return &Service{users: users, attempts: attempts, uploads: uploads, opts: opts}
}

type RegisterRequest struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Photo    *multipart.FileHeader

	// Role is only set by the admin surface; self-registration always
	// creates a regular user.
	Role string
}

// Register validates, stores the photo, and inserts the account. All field
// violations are collected before returning so the form can show every
// problem at once, and nothing is written unless every check passed.
func (s *Service) Register(req RegisterRequest) (*database.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	password := req.Password // never trimmed

	var violations []validate.Violation
	if fullName == "" {
		violations = append(violations, validate.Violation{
			Code: validate.CodeNameRequired, Field: "full_name", Message: "Full name required.",
		})
	}
	if !validate.ValidEmail(email) {
		violations = append(violations, validate.Violation{
			Code: validate.CodeEmailInvalid, Field: "email", Message: "Invalid email.",
		})
	}
	if !validate.ValidPhone(phone) {
		violations = append(violations, validate.Violation{
			Code: validate.CodePhoneInvalid, Field: "phone", Message: "Invalid phone number.",
		})
	}
	violations = append(violations, s.opts.PasswordPolicy.Check(password)...)
	if s.opts.PhotoRequired && req.Photo == nil {
		violations = append(violations, validate.Violation{
			Code: validate.CodePhotoRequired, Field: "profile_photo", Message: "Profile photo required.",
		})
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	photo, err := s.uploads.Process(req.Photo)
	if err != nil {
		return nil, err
	}

	emailTaken, phoneTaken, err := s.users.FindConflicts(email, phone)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if emailTaken || phoneTaken {
		return nil, &DuplicateAccountError{EmailTaken: emailTaken, PhoneTaken: phoneTaken}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	role := req.Role
	if role == "" {
		role = database.RoleUser
	}

	newUser := &database.User{
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
	}
	if photo != "" {
		newUser.ProfilePhoto = &photo
	}

	if err := s.users.Create(newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration; the unique index
			// rejected the insert. Classify which field collided.
			emailTaken, phoneTaken, cerr := s.users.FindConflicts(email, phone)
			if cerr != nil || (!emailTaken && !phoneTaken) {
				return nil, &DuplicateAccountError{EmailTaken: true}
			}
			return nil, &DuplicateAccountError{EmailTaken: emailTaken, PhoneTaken: phoneTaken}
		}
		return nil, &PersistenceError{Err: err}
	}

	return newUser, nil
}

type LoginRequest struct {
	Email     string
	Password  string
	IPAddress string
}

// Profile is the public projection stored in the session. Never the hash.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfilePhoto *string   `json:"profile_photo"`
}

func ProfileOf(u *database.User) Profile {
	return Profile{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		ProfilePhoto: u.ProfilePhoto,
	}
}

const (
	DestinationAdmin     = "/admin"
	DestinationDashboard = "/dashboard"
)

type LoginResult struct {
	Profile     Profile
	Destination string
}

// Login checks the lockout before touching credentials, then verifies the
// password and records the attempt. An unknown email and a wrong password
// take the same path: one recorded failure, one generic error.
func (s *Service) Login(req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validate.ValidEmail(email) || req.Password == "" {
		// One generic violation; which constraint failed is not revealed.
		return nil, &ValidationError{Violations: []validate.Violation{{
			Code: "login_input_invalid", Message: "Invalid email or password.",
		}}}
	}

	locked, err := s.attempts.IsLockedOut(email)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if locked {
		// The lockout check itself is not an attempt and records nothing.
		return nil, &LockoutError{RetryAfter: s.opts.LockoutWindow}
	}

	var u *database.User
	u, err = s.users.GetUserByEmail(email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, &PersistenceError{Err: err}
	}

	ok := u != nil && utils.VerifyPassword(req.Password, u.PasswordHash)

	if rerr := s.attempts.Record(email, req.IPAddress, ok); rerr != nil {
		return nil, &PersistenceError{Err: rerr}
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	destination := DestinationDashboard
	if u.Role == database.RoleAdmin {
		destination = DestinationAdmin
	}

	return &LoginResult{Profile: ProfileOf(u), Destination: destination}, nil
}
