package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
	"github.com/oksasatya/go-qkart-backend/pkg/response"
	"github.com/oksasatya/go-qkart-backend/pkg/validation"
)

// writeError maps service errors onto the response envelope.
// Anything that is not an *apperror.Error is logged and hidden behind a 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	if ae, ok := apperror.As(err); ok {
		if ae.Status >= http.StatusInternalServerError && logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(ae.Message)
		}
		response.Error(c, ae.Status, ae.Message, ae.Details)
		return
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}

func writeBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
