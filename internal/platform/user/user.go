package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accountportal/internal/database"
)

var ErrNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create inserts the user. A unique index collision on email or phone comes
// back as gorm.ErrDuplicatedKey for the caller to classify.
func (s *UserService) Create(user *database.User) error {
	result := s.db.Create(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(email string) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindConflicts reports which of the unique identity fields are already
// taken by an existing account.
func (s *UserService) FindConflicts(email, phone string) (emailTaken, phoneTaken bool, err error) {
	var users []database.User

	result := s.db.Where("email = ? OR phone = ?", email, phone).Find(&users)
	if result.Error != nil {
		return false, false, result.Error
	}

	for _, u := range users {
		if u.Email == email {
			emailTaken = true
		}
		if u.Phone == phone {
			phoneTaken = true
		}
	}
	return emailTaken, phoneTaken, nil
}

func (s *UserService) List(limit, offset int) ([]database.User, error) {
	var users []database.User

	result := s.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserService) Update(user *database.User) error {
	result := s.db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
