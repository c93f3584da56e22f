package util

import (
	"errors"
	"net/http"
)

const (
	INVALID_OBJECT_ID            = "Invalid id format"
	INVALID_DATE_FORMAT          = "Date must be in YYYY-MM-DD format"
	DATE_IN_PAST                 = "Cannot book an appointment in the past"
	DOCTOR_NOT_FOUND             = "Doctor not found"
	PATIENT_NOT_FOUND            = "Patient not found"
	USER_NOT_FOUND               = "User not found"
	LOCATION_NOT_FOUND           = "Location not found"
	SPECIALTY_NOT_FOUND          = "Specialty not found"
	APPOINTMENT_NOT_FOUND        = "Appointment not found"
	MEDICAL_RECORD_NOT_FOUND     = "Medical record not found"
	DOCTOR_SPECIALTY_MISMATCH    = "Doctor does not practice this specialty at this location"
	SPECIALTY_NOT_AT_LOCATION    = "Specialty is not offered at this location"
	SLOT_DOES_NOT_EXIST          = "Slot does not exist for this doctor"
	SLOT_ALREADY_BOOKED          = "Slot already booked"
	APPOINTMENT_NOT_PENDING      = "Appointment is not pending"
	APPOINTMENT_ALREADY_VERIFIED = "Appointment already verified"
	OTP_MISMATCH                 = "Incorrect OTP"
	OTP_EXPIRED                  = "OTP expired, please request a new one"
	CANNOT_CANCEL                = "Appointment can no longer be cancelled"
	NOT_YOUR_APPOINTMENT         = "You do not own this appointment"
	APPOINTMENT_NOT_CONFIRMED    = "Appointment is not confirmed yet"
	MEDICAL_RECORD_EXISTS        = "A medical record already exists for this appointment"
	NOT_RECORD_DOCTOR            = "Only the attending doctor can manage this record"
	NO_RECORD_ACCESS             = "You do not have access to this record"
	EMAIL_ALREADY_REGISTERED     = "Email is already registered"
	INVALID_CREDENTIALS          = "Invalid email or password"
	ACCOUNT_BLOCKED              = "Account blocked after too many failed logins"
	MISSING_TOKEN                = "Authorization token missing or malformed"
	INVALID_TOKEN                = "Invalid or expired token"
	FORBIDDEN_ROLE               = "You do not have permission for this action"
	CANNOT_DELETE_SELF           = "Admins cannot delete their own account"
	INTERNAL_ERROR               = "Something went wrong"
)

// AppError is a failure with a client-facing status. Anything that is not an
// AppError surfaces as a 500 with a generic message.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf hides internal error detail behind a generic message; the real
// error is logged where it happened.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return INTERNAL_ERROR
}
