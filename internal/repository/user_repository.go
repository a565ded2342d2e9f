package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/izio7/Beckenbauer/internal/utils"
)

// User mirrors the 'users' table. Usernames are stored lowercased so the
// unique key enforces the domain's case-insensitive identity.
type User struct {
	ID           uint64
	Username     string
	Name         string
	Surname      string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Roles a user account can hold. Managers administer venues, matches and
// discounts; clients book seats.
const (
	RoleClient  = "CLIENT"
	RoleManager = "MANAGER"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. The password is hashed here;
// the plain text never reaches the table.
func (r *UserRepo) Create(ctx context.Context, username, name, surname, password, role string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, name, surname, password_hash, role) VALUES (?,?,?,?,?)",
		username, name, surname, hash, role)
	if err != nil {
		// 1062 = MySQL duplicate entry
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, name, surname, password_hash, role, created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Name, &u.Surname, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNoRow
	}
	return u, err
}
