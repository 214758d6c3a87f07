package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
	"github.com/pet-catalog-api/pkg/apperrors"
)

// Postgres SQLSTATE codes the gateway translates
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgAdminShutdown       = "57P01"
)

// constraintMessages gives unique indexes a readable conflict message
var constraintMessages = map[string]string{
	"pets_slug_key":                "a pet with this slug already exists",
	"tags_name_key":                "a tag with this name already exists",
	"tags_slug_key":                "a tag with this slug already exists",
	"users_email_key":              "a user with this email already exists",
	"bookmarks_user_id_pet_id_key": "Bookmark already exists",
}

// translate maps driver errors onto the apperrors taxonomy. op names the failed operation.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindUnavailable, err, op+": request cancelled")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch {
		case code == pgUniqueViolation:
			msg, ok := constraintMessages[pqErr.Constraint]
			if !ok {
				msg = "Unique constraint violation"
			}
			return apperrors.Wrap(apperrors.KindConflict, err, msg)
		case code == pgForeignKeyViolation:
			return apperrors.Wrap(apperrors.KindNotFound, err, "referenced record not found")
		case code == pgNotNullViolation, code == pgCheckViolation, code == pgInvalidText:
			return apperrors.Wrap(apperrors.KindValidation, err, "invalid value for "+columnOrTable(pqErr))
		case strings.HasPrefix(code, "08"), code == pgAdminShutdown:
			return apperrors.Wrap(apperrors.KindUnavailable, err, "Database connection failed")
		}
		return apperrors.Internal(err, fmt.Sprintf("%s failed", op))
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return apperrors.Wrap(apperrors.KindUnavailable, err, "Database connection failed")
	}

	return apperrors.Internal(err, fmt.Sprintf("%s failed", op))
}

func columnOrTable(pqErr *pq.Error) string {
	if pqErr.Column != "" {
		return pqErr.Column
	}
	if pqErr.Table != "" {
		return pqErr.Table
	}
	return "field"
}

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
