package gateway

import (
	"net/http"

	. "github.com/forestledger/backend/src/utils/logger"

	"github.com/gin-gonic/gin"
)

func (self *Server) onXummSignIn(c *gin.Context) {
	payload, err := self.xumm.CreateSignInPayload(c)
	if err != nil {
		self.monitor.GetReport().Xumm.Errors.PayloadError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to create sign in payload")
		return
	}

	self.monitor.GetReport().Xumm.State.SignInPayloadsCreated.Inc()

	c.JSON(http.StatusOK, payload)
}

func (self *Server) onXummPayload(c *gin.Context) {
	payload, err := self.xumm.GetPayload(c, c.Param("id"))
	if err != nil {
		self.monitor.GetReport().Xumm.Errors.PayloadError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch payload")
		return
	}

	c.JSON(http.StatusOK, payload)
}
