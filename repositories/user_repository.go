package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"topic-board/helper"
	"topic-board/models"
)

type UserRepository interface {
	// CreateUser stores a new user with a fresh salt/hash pair and the
	// normalized role set (default {user}). models.ErrDuplicateUser when
	// the username is taken.
	CreateUser(username, password string, roles models.RoleSet) (uint, error)

	// GetUser returns the full record. models.ErrNotFound when absent.
	GetUser(username string) (*models.User, error)

	// VerifyUser reports whether the password matches the stored
	// credentials. A missing user is false, not an error.
	VerifyUser(username, password string) (bool, error)

	// ChangePassword rotates the credential. models.ErrNotFound when the
	// user is absent, models.ErrInvalidCredential when oldPassword is
	// wrong. Salt and hash are persisted together in a single update.
	ChangePassword(username, oldPassword, newPassword string) error

	// DeleteUser reports whether a record existed and was removed.
	DeleteUser(username string) (bool, error)
}

type userRepository struct {
	db  *gorm.DB
	pwm *helper.PasswordManager
}

func NewUserRepository(db *gorm.DB, pwm *helper.PasswordManager) UserRepository {
	return &userRepository{db: db, pwm: pwm}
}

func (r *userRepository) CreateUser(username, password string, roles models.RoleSet) (uint, error) {
	if username == "" || password == "" {
		return 0, fmt.Errorf("username and password are required: %w", models.ErrInvalidInput)
	}
	roles = roles.Normalize()
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}

	salt, err := r.pwm.GenerateSalt(0)
	if err != nil {
		return 0, err
	}
	hash, err := r.pwm.HashPassword(password, salt)
	if err != nil {
		return 0, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Roles:        roles,
	}
	if err := r.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("username %q: %w", username, models.ErrDuplicateUser)
		}
		return 0, errors.Join(models.ErrStorageUnavailable, err)
	}
	return user.ID, nil
}

func (r *userRepository) GetUser(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
		}
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}
	return &user, nil
}

func (r *userRepository) VerifyUser(username, password string) (bool, error) {
	user, err := r.GetUser(username)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.pwm.VerifyPassword(password, user.Salt, user.PasswordHash), nil
}

func (r *userRepository) ChangePassword(username, oldPassword, newPassword string) error {
	user, err := r.GetUser(username)
	if err != nil {
		return err
	}
	newSalt, newHash, err := r.pwm.ChangePassword(oldPassword, newPassword, user.Salt, user.PasswordHash)
	if err != nil {
		return err
	}
	// One UPDATE for both columns: the salt/hash pair never diverges.
	err = r.db.Model(&models.User{}).Where("username = ?", username).
		Updates(map[string]interface{}{"salt": newSalt, "password_hash": newHash}).Error
	if err != nil {
		return errors.Join(models.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *userRepository) DeleteUser(username string) (bool, error) {
	res := r.db.Where("username = ?", username).Delete(&models.User{})
	if res.Error != nil {
		return false, errors.Join(models.ErrStorageUnavailable, res.Error)
	}
	return res.RowsAffected > 0, nil
}
