// Package database wires configuration, the connection pool, model
// registration and migrations together for the snapcart server.
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/marshallshelly/snapcart/internal/config"
	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/migrations"
	"github.com/marshallshelly/snapcart/pkg/builder"
	"github.com/marshallshelly/snapcart/pkg/migration"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// Connect opens a connection pool from cfg and registers all models.
// DATABASE_URL takes precedence over the discrete DB_* settings.
func Connect(ctx context.Context, cfg *config.Config) (*builder.DB, error) {
	if err := models.RegisterAll(); err != nil {
		return nil, fmt.Errorf("failed to register models: %w", err)
	}

	var (
		db  *runtime.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = runtime.ConnectWithURL(ctx, cfg.DatabaseURL)
	} else {
		db, err = runtime.Connect(ctx, &runtime.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			Database: cfg.DBName,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			SSLMode:  cfg.DBSSLMode,
			MaxConns: int32(cfg.MaxConns),
			MinConns: int32(cfg.MinConns),
		})
	}
	if err != nil {
		return nil, err
	}

	return builder.New(db), nil
}

// Migrate applies all pending embedded migrations under an advisory lock.
func Migrate(ctx context.Context, db *builder.DB) error {
	migs, err := migration.Load(migrations.Files)
	if err != nil {
		return err
	}

	executor := migration.NewExecutor(db.Runtime().Pool())
	if err := executor.Initialize(ctx); err != nil {
		return err
	}
	if err := executor.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		if err := executor.Unlock(ctx); err != nil {
			logrus.WithError(err).Warn("failed to release migration lock")
		}
	}()

	applied, err := executor.ApplyAll(ctx, migs)
	if err != nil {
		return err
	}
	for _, version := range applied {
		logrus.WithField("version", version).Info("applied migration")
	}
	return nil
}
