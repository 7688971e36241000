package user

import (
	"context"
	"database/sql"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, username, email, password string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	GetProfile(ctx context.Context, userID uint) (Profile, error)
	UpsertProfile(ctx context.Context, p Profile) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, password string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id, username, email, password, created_at",
		username, email, password,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password, created_at FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)

	return u, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password, created_at FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)

	return u, err
}

func (r *repository) GetProfile(ctx context.Context, userID uint) (Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, full_name, phone, address, photo_url
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.FullName, &p.Phone, &p.Address, &p.PhotoURL)

	if err == sql.ErrNoRows {
		return Profile{UserID: userID}, nil
	}
	return p, err
}

func (r *repository) UpsertProfile(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, full_name, phone, address, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET full_name = $2, phone = $3, address = $4, photo_url = $5, updated_at = NOW()
	`, p.UserID, p.FullName, p.Phone, p.Address, p.PhotoURL)
	return err
}
