package gorm

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// ConnectDB opens the Postgres connection. TranslateError maps driver
// errors onto gorm.ErrDuplicatedKey and friends, which the repositories
// depend on.
func ConnectDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// AutoMigrate creates or updates the schema for every domain entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Gym{},
		&domain.User{},
		&domain.TrainerProfile{},
		&domain.StudentProfile{},
		&domain.Exercise{},
		&domain.Workout{},
		&domain.WorkoutItem{},
	)
}

// txKey carries an open transaction through a context.
type txKey struct{}

// dbFrom returns the transaction stored in ctx, if any, so repository calls
// made inside TxManager.Do join that transaction; otherwise the base handle.
func dbFrom(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a repository.TxManager backed by GORM transactions.
func NewTxManager(db *gorm.DB) repository.TxManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
