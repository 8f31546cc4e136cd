package httpapi

import (
	"net/http"

	"github.com/alexdb/alexdb/internal/store"
)

// statusFor maps a store error Kind to the HTTP status the route
// table promises, the single place the core's error taxonomy meets
// HTTP, per the spec's §7 table.
func statusFor(err error) int {
	switch store.KindOf(err) {
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindConflict:
		return http.StatusConflict
	case store.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case store.KindUnauthorized:
		return http.StatusUnauthorized
	case store.KindIoFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
