package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"bitwise74/safeglow-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericInternalMessage = "Internal Server Error"

// ErrorHandler renders the last error attached with c.Error as
// {"message", "requestID"}. It must be registered ahead of every
// middleware and handler that reports errors.
// Errors that aren't *apperr.Error become 500s; in production their
// message is replaced with a generic one.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		requestID := c.GetString("requestID")
		status := http.StatusInternalServerError
		msg := last.Err.Error()

		var ae *apperr.Error
		if errors.As(last.Err, &ae) {
			status = ae.Status
			msg = ae.Message
		}

		if status >= http.StatusInternalServerError {
			zap.L().Error("Request failed",
				zap.Error(last.Err),
				zap.Int("status", status),
				zap.String("requestID", requestID))

			if status == http.StatusInternalServerError {
				if production {
					msg = genericInternalMessage
				} else if ae != nil && ae.Err != nil {
					msg = ae.Err.Error()
				}
			}
		}

		c.JSON(status, gin.H{
			"message":   msg,
			"requestID": requestID,
		})
	}
}

// NotFound is installed as the router's NoRoute handler.
func NotFound(c *gin.Context) {
	c.Error(apperr.NotFound(fmt.Sprintf("Not Found: %s %s", c.Request.Method, c.Request.URL.Path)))
}

// MethodNotAllowed is installed as the router's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	c.Error(apperr.New(http.StatusMethodNotAllowed, fmt.Sprintf("Method Not Allowed: %s %s", c.Request.Method, c.Request.URL.Path)))
}

// abort attaches err for ErrorHandler and stops the chain.
func abort(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}
