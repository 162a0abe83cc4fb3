// Package service provides business logic for the librairie storefront:
// account management, catalog access, and the shopping cart.
package service

import (
	"fmt"
	"net/mail"

	"librairie/database"
	"librairie/database/model"
	"librairie/logger"
	"librairie/util/crypto"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// UserService manages accounts and their roles.
type UserService struct{}

// Register creates a new customer account with role "user".
// Returns ErrValidation for malformed input and ErrConflict when the
// username or email is already taken.
func (s *UserService) Register(username, email, password string) error {
	if len(username) < minUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	db := database.GetDB()

	// Single lookup keyed on either unique field.
	var count int64
	err := db.Model(model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     model.RoleUser,
	}
	err = db.Create(user).Error
	if database.IsDuplicate(err) {
		// Raced with a concurrent registration of the same name.
		return ErrConflict
	}
	return err
}

// CheckUser verifies credentials for login. Returns ErrNotFound for an
// unknown username and ErrInvalidCredentials when the hash does not verify.
func (s *UserService) CheckUser(username, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserById returns the public fields of one account.
func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUsers lists all accounts, newest first. Admin only at the HTTP layer.
func (s *UserService) GetUsers() ([]*model.User, error) {
	db := database.GetDB()

	var users []*model.User
	err := db.Model(model.User{}).
		Order("created_at desc").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole changes an account's role. Live sessions keep the role they
// carried at login; the change applies on the user's next login.
func (s *UserService) UpdateRole(userId int, role string) error {
	if role != model.RoleUser && role != model.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	db := database.GetDB()
	result := db.Model(model.User{}).
		Where("id = ?", userId).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUsers returns the total number of accounts.
func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}

// UpdateFirstUser resets the first account's credentials. Used by the CLI
// `setting update` command for panel recovery.
func (s *UserService) UpdateFirstUser(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username can not be empty", ErrValidation)
	} else if password == "" {
		return fmt.Errorf("%w: password can not be empty", ErrValidation)
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	user.Username = username
	user.Password = hash
	return db.Save(user).Error
}
