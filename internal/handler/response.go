package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
)

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// failure writes err with the status its kind maps to. view, when not nil, is
// the session state after the failure.
func failure(c *gin.Context, err error, view interface{}) {
	status := statusFor(err)
	message := mascota.UserMessage(err)
	if status == http.StatusNotFound || status == http.StatusConflict {
		message = err.Error()
	}
	body := gin.H{"success": false, "error": message}
	if view != nil {
		body["data"] = view
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	var (
		validation *mascota.ValidationError
		upload     *mascota.UploadError
		submit     *mascota.SubmitError
		fetch      *mascota.FetchError
	)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, mascota.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upload), errors.As(err, &submit), errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
