package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("incorrect password")
	ErrWeakPassword   = errors.New("password must be at least 10 characters and contain a number")
	ErrBadEmail       = errors.New("invalid email")

	ErrAddressNotFound = errors.New("address not found")
)

// ValidatePassword enforces the registration policy: at least 10 characters,
// at least one digit.
func ValidatePassword(pw string) error {
	if len(pw) < 10 {
		return ErrWeakPassword
	}
	for _, r := range pw {
		if unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrWeakPassword
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Register(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return User{}, ErrBadEmail
	}
	if err := ValidatePassword(password); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	var u User
	err = r.DB.QueryRow(ctx, `
		INSERT INTO users(email, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, email, created_at`,
		email, string(hash),
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *Repo) Login(ctx context.Context, email, password string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx,
		`SELECT user_id, email, password_hash, created_at FROM users WHERE email = $1`,
		strings.TrimSpace(email),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

func (r *Repo) CreateAddress(ctx context.Context, userID int64, in AddressInput) (Address, error) {
	var a Address
	err := r.DB.QueryRow(ctx, `
		INSERT INTO address(user_id, street, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, street, city, postal_code, country`,
		userID, in.Street, in.City, in.PostalCode, in.Country,
	).Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Address{}, ErrNotFound
		}
		return Address{}, fmt.Errorf("insert address: %w", err)
	}
	return a, nil
}

func (r *Repo) ListAddresses(ctx context.Context, userID int64) ([]Address, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, street, city, postal_code, country
		FROM address WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateAddress(ctx context.Context, id int64, in AddressInput) (Address, error) {
	var a Address
	err := r.DB.QueryRow(ctx, `
		UPDATE address
		SET street = $2, city = $3, postal_code = $4, country = $5
		WHERE id = $1
		RETURNING id, user_id, street, city, postal_code, country`,
		id, in.Street, in.City, in.PostalCode, in.Country,
	).Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, ErrAddressNotFound
	}
	if err != nil {
		return Address{}, fmt.Errorf("update address %d: %w", id, err)
	}
	return a, nil
}

func (r *Repo) DeleteAddress(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM address WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}
