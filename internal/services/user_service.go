package services

import (
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/paulikeo/mercadito/internal/apperr"
	"github.com/paulikeo/mercadito/internal/models"
)

// UserServiceProvider defines the interface for the user directory.
type UserServiceProvider interface {
	RegisterUser(fullName, email, password, confirm string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
}

// UserService provides business logic for registration and login.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByEmail retrieves a single user by email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, full_name, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.E(apperr.ErrNotFound, "user not found")
		}
		return models.User{}, err
	}
	return user, nil
}

// RegisterUser creates a new account with a one-way password hash.
// Registration does not log the user in; no token is issued here.
func (s *UserService) RegisterUser(fullName, email, password, confirm string) (models.User, error) {
	if fullName == "" || email == "" || password == "" || confirm == "" {
		return models.User{}, apperr.E(apperr.ErrValidation, "all fields are required")
	}
	if password != confirm {
		return models.User{}, apperr.E(apperr.ErrValidation, "passwords do not match")
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, apperr.E(apperr.ErrConflict, "email is already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO users(full_name, email, password_hash) VALUES(?, ?, ?)",
		fullName, email, string(hashedPassword))
	if err != nil {
		// Unique index backstop for a race between the pre-check and insert.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return models.User{}, apperr.E(apperr.ErrConflict, "email is already registered")
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{ID: id, FullName: fullName, Email: email}, nil
}

// AuthenticateUser verifies a user's credentials. Unknown email and wrong
// password report the same message so the endpoint is not an email oracle.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, apperr.E(apperr.ErrAuth, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.E(apperr.ErrAuth, "invalid credentials")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
