package server

import (
	"net/http"

	"github.com/jonathan/resume-grader/internal/controller"
)

// HTTPStatus returns the appropriate HTTP status code for a controller failure
func HTTPStatus(err error) int {
	switch controller.ErrorKind(err) {
	case "invalid_action", "missing_input", "stale_result":
		return http.StatusConflict
	case "extraction_error":
		return http.StatusUnprocessableEntity
	case "fetch_error", "analysis_error":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
