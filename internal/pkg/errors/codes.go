package errors

import "net/http"

var (
	ErrAreaNotFound = New(
		"AREA_NOT_FOUND",
		"Service area not found",
		http.StatusNotFound,
	)

	ErrAreasUnavailable = New(
		"AREAS_UNAVAILABLE",
		"Unable to load service areas",
		http.StatusServiceUnavailable,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
