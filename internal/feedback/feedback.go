package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("feedback not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrUnknownUser   = errors.New("unknown user")
)

type Feedback struct {
	ID        int64     `json:"feedback_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	// Email of the author, filled on list reads only.
	Email string `json:"email,omitempty"`
}

type Input struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func (in Input) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, userID int64, in Input) (Feedback, error) {
	if err := in.validate(); err != nil {
		return Feedback{}, err
	}
	var f Feedback
	err := r.DB.QueryRow(ctx, `
		INSERT INTO feedback(user_id, rating, comment)
		VALUES ($1, $2, $3)
		RETURNING feedback_id, user_id, rating, comment, created_at`,
		userID, in.Rating, in.Comment,
	).Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Feedback{}, ErrUnknownUser
		}
		return Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}
	return f, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (Feedback, error) {
	var f Feedback
	err := r.DB.QueryRow(ctx,
		`SELECT feedback_id, user_id, rating, comment, created_at FROM feedback WHERE feedback_id = $1`,
		id,
	).Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Feedback{}, ErrNotFound
	}
	if err != nil {
		return Feedback{}, fmt.Errorf("get feedback %d: %w", id, err)
	}
	return f, nil
}

// List returns all feedback newest first, with the author's email joined in.
func (r *Repo) List(ctx context.Context) ([]Feedback, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT f.feedback_id, f.user_id, f.rating, f.comment, f.created_at, COALESCE(u.email, '')
		FROM feedback f
		LEFT JOIN users u ON f.user_id = u.user_id
		ORDER BY f.created_at DESC, f.feedback_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt, &f.Email); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, id int64, in Input) (Feedback, error) {
	if err := in.validate(); err != nil {
		return Feedback{}, err
	}
	var f Feedback
	err := r.DB.QueryRow(ctx, `
		UPDATE feedback SET rating = $2, comment = $3
		WHERE feedback_id = $1
		RETURNING feedback_id, user_id, rating, comment, created_at`,
		id, in.Rating, in.Comment,
	).Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Feedback{}, ErrNotFound
	}
	if err != nil {
		return Feedback{}, fmt.Errorf("update feedback %d: %w", id, err)
	}
	return f, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM feedback WHERE feedback_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
