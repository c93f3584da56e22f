package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessResponse(t *testing.T) {
	resp := SuccessResponse("Appointment created", map[string]string{"id": "abc"})

	assert.True(t, resp.Success)
	assert.Equal(t, "Appointment created", resp.Message)

	raw, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "details")
}

func TestFailedResponse_AppError(t *testing.T) {
	resp := FailedResponse(BadRequest(SLOT_ALREADY_BOOKED))

	assert.False(t, resp.Success)
	assert.Equal(t, SLOT_ALREADY_BOOKED, resp.Message)
}

func TestFailedResponse_HidesInternalErrors(t *testing.T) {
	resp := FailedResponse(errors.New("connection refused to 10.0.0.3:27017"))

	assert.False(t, resp.Success)
	assert.Equal(t, INTERNAL_ERROR, resp.Message)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(BadRequest(OTP_MISMATCH)))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized(INVALID_CREDENTIALS)))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden(FORBIDDEN_ROLE)))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound(DOCTOR_NOT_FOUND)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
