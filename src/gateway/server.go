package gateway

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/forestledger/backend/src/nft"
	"github.com/forestledger/backend/src/token"
	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/monitor"
	"github.com/forestledger/backend/src/utils/task"
	"github.com/forestledger/backend/src/utils/xrpl"
	"github.com/forestledger/backend/src/utils/xumm"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
)

// Rest API server, serves the certificate and token endpoints
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor *monitor.Monitor
	nft     *nft.Service
	token   *token.Service
	ledger  *xrpl.Client
	xumm    *xumm.Client

	issuerAddress string
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	self.Router = gin.New()

	self.httpServer = &http.Server{
		Addr:    self.Config.Gateway.RESTListenAddress,
		Handler: self.Router,
	}

	return
}

func (self *Server) WithMonitor(monitor *monitor.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) WithNFTService(nft *nft.Service) *Server {
	self.nft = nft
	return self
}

func (self *Server) WithTokenService(token *token.Service) *Server {
	self.token = token
	return self
}

func (self *Server) WithLedger(ledger *xrpl.Client) *Server {
	self.ledger = ledger
	return self
}

func (self *Server) WithXumm(xumm *xumm.Client) *Server {
	self.xumm = xumm
	return self
}

func (self *Server) WithIssuerAddress(address string) *Server {
	self.issuerAddress = address
	return self
}

func (self *Server) run() (err error) {
	if self.Config.IsDevelopment {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router.Use(gin.Recovery(), self.requestId(), self.accessLog(), self.cors())

	if self.Config.Profiler.Enabled {
		runtime.SetBlockProfileRate(self.Config.Profiler.BlockProfileRate)
		runtime.SetMutexProfileFraction(self.Config.Profiler.MutexProfileRate)
		pprof.Register(self.Router, "debug/pprof")
	}

	self.Router.POST("request-nft", self.onCreateRequest)
	self.Router.POST("mint-nft", self.onMintNFT)

	self.Router.GET("nfts/:address", self.onAccountNFTs)
	self.Router.GET("nfts/:address/pending-offers", self.onPendingOffers)
	self.Router.GET("nft-offers/:offerId/xumm-link", self.onOfferXummLink)
	self.Router.GET("nft-offers/:offerId/status", self.onOfferStatus)

	self.Router.GET("nft-requests/:id", self.onGetRequest)
	self.Router.GET("users/:userId/nft-requests", self.onListUserRequests)
	self.Router.GET("wallets/:address/nft-requests", self.onListWalletRequests)

	admin := self.Router.Group("admin")
	{
		admin.GET("nft-requests", self.onListRequests)
		admin.POST("nft-requests/:id/approve", self.onApproveRequest)
		admin.POST("nft-requests/:id/reject", self.onRejectRequest)
		admin.POST("setup-token", self.onSetupToken)
	}

	tok := self.Router.Group("token")
	{
		tok.GET("balance/:address", self.onTokenBalance)
		tok.POST("send", self.onSendTokens)
		tok.POST("trust-line", self.onTrustLine)
	}

	api := self.Router.Group("api")
	{
		api.POST("xumm/signin", self.onXummSignIn)
		api.GET("xumm/payload/:id", self.onXummPayload)
	}

	v1 := self.Router.Group("v1")
	{
		v1.GET("health", self.monitor.OnGetHealth)
		v1.GET("state", self.monitor.OnGetState)

		registry := prometheus.NewRegistry()
		registry.MustRegister(self.monitor.GetPrometheusCollector())
		v1.GET("metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}

// Attributes a failed submission to the counter matching its cause
func (self *Server) countSubmitError(err error) {
	report := self.monitor.GetReport()
	switch {
	case errors.Is(err, nft.ErrPinFailed):
		report.Pinning.Errors.PinError.Inc()
	case errors.Is(err, xrpl.ErrTxExpired):
		report.Ledger.Errors.TxExpired.Inc()
	case errors.Is(err, xrpl.ErrSigningFailed):
		report.Ledger.Errors.SigningError.Inc()
	default:
		report.Ledger.Errors.SubmitError.Inc()
	}
}

func (self *Server) requestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(logger.ContextRequestIdKey, xid.New().String())
		c.Next()
	}
}

func (self *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.LOG(c).
			WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("duration", time.Since(start)).
			Debug("Handled request")
	}
}

func (self *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", self.Config.Gateway.CorsAllowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
