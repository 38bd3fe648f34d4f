package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/safeglow-api/internal/model"

	"gorm.io/gorm"
)

// GormStore is a UserStore backed by SQLite or Postgres through gorm.
// The database must be opened with TranslateError enabled so unique index
// violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

var _ UserStore = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &u, nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", NormalizeEmail(email))
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.first(ctx, "username = ?", NormalizeUsername(username))
}

func (s *GormStore) FindByVerificationHash(ctx context.Context, hash string, now time.Time) (*model.User, error) {
	return s.first(ctx, "email_verification_token_hash = ? AND email_verification_expires_at > ?", hash, now)
}

func (s *GormStore) Create(ctx context.Context, u *model.User) error {
	normalize(u)

	if u.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate user ID, %w", err)
		}
		u.ID = id
	}

	err := s.db.WithContext(ctx).Create(u).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.conflict(ctx, u)
	}

	return err
}

// conflict works out which unique field a rejected insert collided on.
func (s *GormStore) conflict(ctx context.Context, u *model.User) error {
	if _, err := s.FindByEmail(ctx, u.Email); err == nil {
		return ErrEmailTaken
	}

	if u.Username != nil {
		if _, err := s.FindByUsername(ctx, *u.Username); err == nil {
			return ErrUsernameTaken
		}
	}

	return ErrEmailTaken
}

func (s *GormStore) MarkVerified(ctx context.Context, id string) error {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"email_verified":                true,
			"email_verification_token_hash": nil,
			"email_verification_expires_at": nil,
		})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
