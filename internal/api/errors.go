package api

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/repository"
	"alcyxob/trainer-dashboard/internal/service"
	"alcyxob/trainer-dashboard/internal/storage"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidWorkoutStatus = errors.New("invalid workout status")
	errInvalidClientID      = errors.New("invalid clientId")
)

// abortWithServiceError maps service and repository errors onto HTTP status codes.
// Anything unrecognised is logged and answered with a generic 500.
func abortWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrClientInactive):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrClientNameMissing),
		errors.Is(err, service.ErrInvalidWorkoutType),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidLevel),
		errors.Is(err, service.ErrInvalidPlanPosition),
		errors.Is(err, service.ErrTemplateNameRequired),
		errors.Is(err, service.ErrInvalidGranularity),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, filter.ErrInvalidStatusFilter),
		errors.Is(err, repository.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnknownAction):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrValueTooLarge):
		abortWithError(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, storage.ErrPresignUnsupported):
		abortWithError(c, http.StatusNotImplemented, err.Error())
	default:
		log.Errorf("%s: %v", fallback, err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// paramID parses a positive integer path parameter. On failure it aborts
// the request and reports false.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return 0, false
	}
	return id, true
}
