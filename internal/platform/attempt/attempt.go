// Package attempt is the login attempt ledger backing the brute-force
// lockout. Attempts are keyed by the submitted email string, whether or not
// an account with that email exists.
package attempt

import (
	"time"

	"gorm.io/gorm"

	"accountportal/internal/database"
)

type Service struct {
	db        *gorm.DB
	threshold int
	window    time.Duration
	now       func() time.Time
}

func NewService(db *gorm.DB, threshold int, window time.Duration) *Service {
	return &Service{db: db, threshold: threshold, window: window, now: time.Now}
}

// Record appends one attempt row. Rows are never updated or deleted here.
func (s *Service) Record(email, ipAddress string, success bool) error {
	att := database.LoginAttempt{
		Email:       email,
		IPAddress:   ipAddress,
		Success:     success,
		AttemptedAt: s.now(),
	}
	return s.db.Create(&att).Error
}

// IsLockedOut counts failed attempts for the email inside the trailing
// window. Checking does not count as an attempt.
func (s *Service) IsLockedOut(email string) (bool, error) {
	cutoff := s.now().Add(-s.window)

	var failed int64
	err := s.db.Model(&database.LoginAttempt{}).
		Where("email = ? AND success = ? AND attempted_at > ?", email, false, cutoff).
		Count(&failed).Error
	if err != nil {
		return false, err
	}

	return failed >= int64(s.threshold), nil
}
