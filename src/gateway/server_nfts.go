package gateway

import (
	"errors"
	"net/http"

	"github.com/forestledger/backend/src/gateway/response"
	"github.com/forestledger/backend/src/nft"
	. "github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/gin-gonic/gin"
)

func (self *Server) onMintNFT(c *gin.Context) {
	imagePath, imageName, ok := self.bufferUpload(c)
	if !ok {
		return
	}

	result, err := self.nft.MintDirect(c, nft.MintParams{
		ImagePath: imagePath,
		ImageName: imageName,
		Fields:    attributeFields(c),
	})
	if err != nil {
		self.countSubmitError(err)
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to mint NFT")
		return
	}

	self.monitor.GetReport().Ledger.State.NFTsMinted.Inc()

	c.JSON(http.StatusOK, &response.Mint{
		Message:      "NFT successfully generated and minted!",
		MetadataURI:  result.MetadataURI,
		MintResponse: result.MintTx,
	})
}

func (self *Server) onAccountNFTs(c *gin.Context) {
	nfts, err := self.nft.AccountNFTs(c, c.Param("address"))
	if err != nil {
		if errors.Is(err, xrpl.ErrAccountNotFound) {
			LOGE(c, err, http.StatusNotFound).Debug("Account not found")
			return
		}
		self.monitor.GetReport().Ledger.Errors.QueryError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch NFTs")
		return
	}

	c.JSON(http.StatusOK, nfts)
}

func (self *Server) onPendingOffers(c *gin.Context) {
	address := c.Param("address")

	offers, err := self.ledger.PendingOffers(c, address, self.issuerAddress)
	if err != nil {
		self.monitor.GetReport().Ledger.Errors.QueryError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch pending offers")
		return
	}

	c.JSON(http.StatusOK, &response.PendingOffers{
		Address: address,
		Offers:  offers,
	})
}
