package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
)

var (
	ErrUnknownCountry = errors.New("unknown country")
	ErrBadDate        = errors.New("date must look like 2006-01-02")
	ErrBadMonth       = errors.New("month must look like 2006-01")
	ErrMissingField   = errors.New("country, city and date are required")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownCountry),
		errors.Is(err, dashboard.ErrUnknownCity):
		return http.StatusNotFound

	case errors.Is(err, ErrBadDate),
		errors.Is(err, ErrBadMonth),
		errors.Is(err, ErrMissingField):
		return http.StatusBadRequest

	case errors.Is(err, dashboard.ErrDateUnavailable),
		errors.Is(err, dashboard.ErrNothingSelected):
		return http.StatusConflict

	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

func message(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func mapError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= 500 {
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(status, gin.H{"error": message(status, err)})
}

func mapErrorHTML(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= 500 {
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.HTML(status, "error.html", gin.H{"Title": http.StatusText(status), "Status": status, "Message": message(status, err)})
}
