package gateway

import (
	"errors"
	"net/http"

	"github.com/forestledger/backend/src/gateway/request"
	"github.com/forestledger/backend/src/gateway/response"
	. "github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/gin-gonic/gin"
)

var errCurrencyIssuerRequired = errors.New("currency and issuer are required")

func (self *Server) onSetupToken(c *gin.Context) {
	result, err := self.token.Provision(c)
	if err != nil {
		self.countSubmitError(err)
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to setup token")
		return
	}

	report := self.monitor.GetReport()
	report.Ledger.State.TrustLinesSet.Inc()
	report.Ledger.State.TokenPayments.Inc()

	c.JSON(http.StatusOK, &response.SetupToken{
		Message: "Forestledger token setup completed successfully!",
		Result:  result,
	})
}

func (self *Server) onTokenBalance(c *gin.Context) {
	address := c.Param("address")
	currency := c.Query("currency")
	issuer := c.Query("issuer")

	if currency == "" || issuer == "" {
		LOGE(c, errCurrencyIssuerRequired, http.StatusBadRequest).Error("Failed to validate request")
		return
	}

	balance, err := self.token.Balance(c, address, currency, issuer)
	if err != nil {
		if errors.Is(err, xrpl.ErrAccountNotFound) {
			LOGE(c, err, http.StatusNotFound).Debug("Account not found")
			return
		}
		self.monitor.GetReport().Ledger.Errors.QueryError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to get token balance")
		return
	}

	c.JSON(http.StatusOK, &response.TokenBalance{
		Address:  address,
		Currency: currency,
		Issuer:   issuer,
		Balance:  balance,
	})
}

func (self *Server) onSendTokens(c *gin.Context) {
	var in request.SendTokens
	err := c.ShouldBindJSON(&in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Error("Failed to parse request")
		return
	}

	tx, err := self.token.Send(c, in.HotWalletSeed, in.Destination, in.Currency, in.Amount, in.Issuer)
	if err != nil {
		switch {
		case errors.Is(err, xrpl.ErrAccountNotFound):
			LOGE(c, err, http.StatusNotFound).Debug("Destination account not found")
		case errors.Is(err, xrpl.ErrNoTrustLine):
			LOGE(c, err, http.StatusBadRequest).Error("Destination does not trust the currency")
		default:
			self.countSubmitError(err)
			LOGE(c, err, http.StatusInternalServerError).Error("Failed to send tokens")
		}
		return
	}

	self.monitor.GetReport().Ledger.State.TokenPayments.Inc()

	c.JSON(http.StatusOK, &response.TokenTransaction{
		Message:     "Tokens sent successfully!",
		Transaction: tx,
	})
}

func (self *Server) onTrustLine(c *gin.Context) {
	var in request.TrustLine
	err := c.ShouldBindJSON(&in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Error("Failed to parse request")
		return
	}

	tx, err := self.token.TrustLine(c, in.WalletSeed, in.Issuer, in.Currency, in.Limit)
	if err != nil {
		self.countSubmitError(err)
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to create trust line")
		return
	}

	self.monitor.GetReport().Ledger.State.TrustLinesSet.Inc()

	c.JSON(http.StatusOK, &response.TokenTransaction{
		Message:     "Trust line created successfully!",
		Transaction: tx,
	})
}
