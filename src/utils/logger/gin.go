package logger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Request id set by the gateway middleware
const ContextRequestIdKey = "request_id"

// Request scoped logger
func LOG(c *gin.Context) (entry *logrus.Entry) {
	entry = NewSublogger("gateway")
	if id := c.GetString(ContextRequestIdKey); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return
}

// Finishes the request with the error envelope and returns the logger, so
// the caller decides the log message and level
func LOGE(c *gin.Context, err error, status int) (entry *logrus.Entry) {
	entry = LOG(c)

	body := gin.H{"error": http.StatusText(status)}
	if err != nil {
		entry = entry.WithError(err)
		body["details"] = err.Error()
	}

	c.AbortWithStatusJSON(status, body)
	return
}
