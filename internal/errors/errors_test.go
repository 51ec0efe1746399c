package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "wrapped")

	assert.Equal(t, "wrapped: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := Internal("plain")
	assert.Equal(t, "plain", bare.Error())
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Email is required.")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "email", GetField(err))
	assert.Equal(t, ErrCodeValidation, GetCode(err))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsUnauthenticated(Unauthenticated("x")))
	assert.True(t, IsUpstream(Upstream("x")))
	assert.False(t, IsUpstream(Internal("x")))
	assert.False(t, IsValidation(errors.New("not an app error")))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Empty(t, GetField(errors.New("plain")))
}

func TestWrap_NilIsNil(t *testing.T) {
	var err *AppError
	require.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	_ = err
}

func TestMapDBError(t *testing.T) {
	assert.NoError(t, MapDBError(nil))

	assert.True(t, IsNotFound(MapDBError(pgx.ErrNoRows)))

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.True(t, IsConflict(MapDBError(fmt.Errorf("insert: %w", unique))))

	check := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.True(t, IsValidation(MapDBError(check)))

	timeout := MapDBError(context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, GetCode(timeout))

	canceled := MapDBError(context.Canceled)
	assert.Equal(t, ErrCodeCanceled, GetCode(canceled))

	plain := errors.New("unrelated")
	assert.Equal(t, plain, MapDBError(plain))
}
