package errutil

import "net/http"

// CoreStatus is the transport-agnostic error class carried by BaseError.
type CoreStatus string

const (
	StatusBadRequest       CoreStatus = "bad_request"
	StatusUnauthorized     CoreStatus = "unauthorized"
	StatusNotFound         CoreStatus = "not_found"
	StatusConflict         CoreStatus = "conflict"
	StatusValidationFailed CoreStatus = "validation_failed"
	StatusInternal         CoreStatus = "internal"
)

// HTTPStatus maps the status to its HTTP equivalent. Ownership failures are
// reported as StatusUnauthorized and therefore surface as 401.
func (s CoreStatus) HTTPStatus() int {
	switch s {
	case StatusBadRequest, StatusValidationFailed:
		return http.StatusBadRequest
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusNotFound:
		return http.StatusNotFound
	case StatusConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
