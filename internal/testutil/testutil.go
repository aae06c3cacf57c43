// Package testutil provides common assertions for binding tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
)

// RequireNoError is a convenience wrapper for require.NoError
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// RequireError is a convenience wrapper for require.Error
func RequireError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
}

// AssertCallError asserts that err wraps a *errors.CallError for the
// given procedure and status.
func AssertCallError(t *testing.T, err error, procedure string, status int) {
	t.Helper()

	callErr, ok := errors.AsCallError(err)
	require.True(t, ok, "expected a call error, got %v", err)
	assert.Equal(t, procedure, callErr.Procedure)
	assert.Equal(t, status, callErr.Status)
}

// AssertClosed asserts that err wraps a *errors.ClosedError.
func AssertClosed(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, errors.IsClosed(err), msgAndArgs...)
}

// AssertNotFound asserts that err wraps a *errors.NotFoundError for the
// given kind.
func AssertNotFound(t *testing.T, err error, kind string) {
	t.Helper()

	var notFound *errors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, kind, notFound.Kind)
}

// AssertTableShape asserts that tbl has the given number of rows and
// data columns and passes its own consistency check.
func AssertTableShape(t *testing.T, tbl entities.Table, rows, cols int) {
	t.Helper()

	require.NoError(t, tbl.Validate())
	assert.Equal(t, rows, tbl.NumRows())
	assert.Equal(t, cols, tbl.NumColumns())
}
