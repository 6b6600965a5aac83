package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validationf("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflictf("duplicate")))
	assert.Equal(t, KindInsufficientStock, KindOf(InsufficientStockf("empty shelf")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorizedf("no token")))
	assert.Equal(t, KindForbidden, KindOf(Forbiddenf("not yours")))
	assert.Equal(t, KindInternal, KindOf(Internal(errors.New("boom"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("failed to add item: %w", InsufficientStockf("only 2 left"))
	assert.Equal(t, KindInsufficientStock, KindOf(err))
	assert.True(t, IsInsufficientStock(err))
}

func TestIsMatchesByKind(t *testing.T) {
	a := NotFoundf("product 1 not found")
	b := NotFoundf("order 9 not found")
	assert.True(t, errors.Is(a, b))

	c := Conflictf("code taken")
	assert.False(t, errors.Is(a, c))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validationf("bad"), http.StatusBadRequest},
		{Unauthorizedf("no token"), http.StatusUnauthorized},
		{Forbiddenf("not yours"), http.StatusForbidden},
		{NotFoundf("missing"), http.StatusNotFound},
		{Conflictf("duplicate"), http.StatusConflict},
		{InsufficientStockf("empty"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFoundf("missing")), http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}
