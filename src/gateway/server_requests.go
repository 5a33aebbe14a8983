package gateway

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/forestledger/backend/src/gateway/response"
	"github.com/forestledger/backend/src/nft"
	. "github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
)

var errImageRequired = errors.New("image is required")
var errIdentityRequired = errors.New("user id and wallet address are required")

func (self *Server) onCreateRequest(c *gin.Context) {
	userId := c.PostForm("userId")
	walletAddress := c.PostForm("walletAddress")
	if userId == "" || walletAddress == "" {
		LOGE(c, errIdentityRequired, http.StatusBadRequest).Error("Failed to validate request")
		return
	}

	imagePath, imageName, ok := self.bufferUpload(c)
	if !ok {
		return
	}

	request, err := self.nft.CreateRequest(c, nft.CreateRequestParams{
		UserId:        userId,
		WalletAddress: walletAddress,
		ImagePath:     imagePath,
		ImageName:     imageName,
		Fields:        attributeFields(c),
	})
	if err != nil {
		if errors.Is(err, nft.ErrPinFailed) {
			self.monitor.GetReport().Pinning.Errors.PinError.Inc()
		} else {
			self.monitor.GetReport().Requests.Errors.DbError.Inc()
		}
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to create NFT request")
		return
	}

	self.monitor.GetReport().Requests.State.RequestsCreated.Inc()

	c.JSON(http.StatusCreated, &response.CreateRequest{
		Message: "NFT request created successfully!",
		Request: request,
	})
}

func (self *Server) onGetRequest(c *gin.Context) {
	id, ok := self.pathId(c)
	if !ok {
		return
	}

	request, err := self.nft.GetRequest(c, id)
	if err != nil {
		if errors.Is(err, nft.ErrNotFound) {
			LOGE(c, err, http.StatusNotFound).Debug("NFT request not found")
			return
		}
		self.monitor.GetReport().Requests.Errors.DbError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch NFT request")
		return
	}

	c.JSON(http.StatusOK, request)
}

func (self *Server) onListRequests(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !model.IsValidStatus(status) {
		LOGE(c, errors.New("unknown status: "+status), http.StatusBadRequest).Error("Failed to validate request")
		return
	}

	requests, err := self.nft.ListRequests(c, status)
	if err != nil {
		self.monitor.GetReport().Requests.Errors.DbError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch NFT requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (self *Server) onListUserRequests(c *gin.Context) {
	requests, err := self.nft.ListUserRequests(c, c.Param("userId"))
	if err != nil {
		self.monitor.GetReport().Requests.Errors.DbError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch user's NFT requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (self *Server) onListWalletRequests(c *gin.Context) {
	requests, err := self.nft.ListWalletRequests(c, c.Param("address"))
	if err != nil {
		self.monitor.GetReport().Requests.Errors.DbError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch wallet's NFT requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (self *Server) onApproveRequest(c *gin.Context) {
	id, ok := self.pathId(c)
	if !ok {
		return
	}

	approval, err := self.nft.ApproveRequest(c, id)
	if err != nil {
		switch {
		case errors.Is(err, nft.ErrNotFound):
			LOGE(c, err, http.StatusNotFound).Debug("NFT request not found")
		case errors.Is(err, nft.ErrInvalidTransition):
			LOGE(c, err, http.StatusBadRequest).Error("Failed to approve NFT request")
		default:
			self.countSubmitError(err)
			LOGE(c, err, http.StatusInternalServerError).Error("Failed to approve NFT request")
		}
		return
	}

	report := self.monitor.GetReport()
	report.Requests.State.RequestsApproved.Inc()
	report.Ledger.State.NFTsMinted.Inc()
	report.Ledger.State.SellOffersCreated.Inc()

	c.JSON(http.StatusOK, response.ApprovalToResponse(approval))
}

func (self *Server) onRejectRequest(c *gin.Context) {
	id, ok := self.pathId(c)
	if !ok {
		return
	}

	request, err := self.nft.RejectRequest(c, id)
	if err != nil {
		switch {
		case errors.Is(err, nft.ErrNotFound):
			LOGE(c, err, http.StatusNotFound).Debug("NFT request not found")
		case errors.Is(err, nft.ErrInvalidTransition):
			LOGE(c, err, http.StatusBadRequest).Error("Failed to reject NFT request")
		default:
			self.monitor.GetReport().Requests.Errors.DbError.Inc()
			LOGE(c, err, http.StatusInternalServerError).Error("Failed to reject NFT request")
		}
		return
	}

	self.monitor.GetReport().Requests.State.RequestsRejected.Inc()

	c.JSON(http.StatusOK, &response.RejectRequest{
		Message: "NFT request rejected successfully!",
		Request: request,
	})
}

func (self *Server) pathId(c *gin.Context) (id int, ok bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Error("Failed to parse request id")
		return 0, false
	}
	return id, true
}

// Saves the multipart image into the upload dir under a fresh name. The
// caller's service removes the file once it was pinned.
func (self *Server) bufferUpload(c *gin.Context) (path, name string, ok bool) {
	header, err := c.FormFile("image")
	if err != nil {
		self.monitor.GetReport().Requests.Errors.UploadError.Inc()
		LOGE(c, errImageRequired, http.StatusBadRequest).Error("Failed to read uploaded image")
		return
	}

	if header.Size > self.Config.Gateway.MaxUploadSize {
		LOGE(c, errors.New("image is too big"), http.StatusBadRequest).Error("Failed to validate request")
		return
	}

	err = os.MkdirAll(self.Config.Gateway.UploadDir, 0o755)
	if err != nil {
		self.monitor.GetReport().Requests.Errors.UploadError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to create upload dir")
		return
	}

	path = filepath.Join(self.Config.Gateway.UploadDir, xid.New().String()+filepath.Ext(header.Filename))
	err = c.SaveUploadedFile(header, path)
	if err != nil {
		self.monitor.GetReport().Requests.Errors.UploadError.Inc()
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to buffer uploaded image")
		return "", "", false
	}

	return path, header.Filename, true
}

func attributeFields(c *gin.Context) nft.AttributeFields {
	return nft.AttributeFields{
		VegetationCoverage: c.PostForm("vegetationCoverage"),
		Hectares:           c.PostForm("hectares"),
		SpecificAttributes: c.PostForm("specificAttributes"),
		WaterBodies:        c.PostForm("waterBodies"),
		Springs:            c.PostForm("springs"),
		Projects:           c.PostForm("projects"),
		CarRegistry:        c.PostForm("carRegistry"),
	}
}
