package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// runTx executes fn inside a DB transaction when db is non-nil.
// When db is nil (unit tests using stub repos) fn is called with tx=nil.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// noEncontrado replaces gorm.ErrRecordNotFound with the domain sentinel.
func noEncontrado(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func parseID(campo, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", ErrEntradaInvalida, campo, err)
	}
	return id, nil
}

func parseIDOpcional(campo string, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(campo, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// nombreRequerido trims raw and rejects it when nothing is left.
func nombreRequerido(campo, raw string) (string, error) {
	nombre := strings.TrimSpace(raw)
	if nombre == "" {
		return "", fmt.Errorf("%w: %s vacío", ErrEntradaInvalida, campo)
	}
	return nombre, nil
}
