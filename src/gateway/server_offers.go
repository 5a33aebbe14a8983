package gateway

import (
	"net/http"

	"github.com/forestledger/backend/src/gateway/response"
	. "github.com/forestledger/backend/src/utils/logger"

	"github.com/gin-gonic/gin"
)

// Creates a XUMM payload that lets the requester accept the sell offer
// from the mobile wallet
func (self *Server) onOfferXummLink(c *gin.Context) {
	payload, err := self.xumm.CreateNFTokenAcceptOfferPayload(c, c.Param("offerId"))
	if err != nil {
		self.monitor.GetReport().Xumm.Errors.PayloadError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to create XUMM payload")
		return
	}

	self.monitor.GetReport().Xumm.State.OfferPayloadsCreated.Inc()

	c.JSON(http.StatusOK, payload)
}

func (self *Server) onOfferStatus(c *gin.Context) {
	offerId := c.Param("offerId")

	status, err := self.ledger.OfferStatus(c, offerId)
	if err != nil {
		self.monitor.GetReport().Ledger.Errors.QueryError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to check offer status")
		return
	}

	c.JSON(http.StatusOK, &response.OfferStatus{
		OfferId: offerId,
		Status:  status,
	})
}
