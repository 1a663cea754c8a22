package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, MetadataFor(tc.code).HTTPStatus, string(tc.code))
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
	assert.True(t, meta.Retryable)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(CodeDependency, cause, "query failed")

	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestAsUnwrapsThroughFmt(t *testing.T) {
	inner := New(CodeNotFound, "order not found")
	wrapped := fmt.Errorf("loading order: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())

	assert.Nil(t, As(errors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestDumpSurfacesPGError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
		TableName:      "users",
		Message:        "duplicate key value",
	}
	err := Wrap(CodeConflict, fmt.Errorf("insert user: %w", pgErr), "create user")

	d := Dump(err)
	assert.Equal(t, CodeConflict, d.Code)
	assert.Equal(t, "23505", d.PGCode)
	assert.Equal(t, "users_email_key", d.PGConstraint)
	assert.NotEmpty(t, d.Chain)
}
