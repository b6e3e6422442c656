package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(NewNotFound("profile", "x")))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(NewValidation(map[string]string{"handle": "required"})))
	// Duplicate handles were always a 400 on the wire, not a 409.
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(NewConflict("profile", "handle", "johndoe")))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(NewUnauthorized("no token", nil)))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(NewInternal("boom", errors.New("db down"))))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(errors.New("plain error")))
}

func TestAppError_FieldsBecomeBody(t *testing.T) {
	err := NewNotFound("profile", "x").WithFields(map[string]string{"noprofile": "There is no profile for this user"})

	body := err.ToJSON()
	assert.Equal(t, "There is no profile for this user", body["noprofile"])
	assert.NotContains(t, body, "error")
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewValidation(map[string]string{"status": "Status field is required"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
}
