package pinata

import (
	"context"
	"fmt"
	"strings"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/logger"

	"github.com/go-resty/resty/v2"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client for the Pinata pinning API.
// Uploads get pinned to IPFS, reads go through a public gateway and are
// cached in memory since pinned content is immutable.
type Client struct {
	client  *resty.Client
	gateway *resty.Client
	config  *config.Pinata
	log     *logrus.Entry

	limiter       *rate.Limiter
	metadataCache *cache.Cache
}

func NewClient(config *config.Pinata) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("pinata-client")

	self.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	self.metadataCache = cache.New(config.MetadataCacheTtl, 2*config.MetadataCacheTtl)

	self.client = resty.New().
		SetBaseURL(config.Url).
		SetTimeout(config.RequestTimeout).
		SetHeader("pinata_api_key", config.ApiKey).
		SetHeader("pinata_secret_api_key", config.SecretApiKey).
		OnBeforeRequest(self.onRateLimit).
		OnAfterResponse(onStatusToError)

	self.gateway = resty.New().
		SetBaseURL(config.GatewayUrl).
		SetTimeout(config.RequestTimeout).
		OnAfterResponse(onStatusToError)

	return
}

func (self *Client) onRateLimit(c *resty.Client, req *resty.Request) (err error) {
	return self.limiter.Wait(req.Context())
}

func onStatusToError(c *resty.Client, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return fmt.Errorf("unexpected status: %s: %s", resp.Status(), resp.String())
}

// Pins a file stored on the local filesystem
func (self *Client) PinFile(ctx context.Context, filePath, fileName string) (out *PinResponse, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetFile("file", filePath).
		SetResult(&PinResponse{}).
		Post("/pinning/pinFileToIPFS")
	if err != nil {
		return
	}

	out = resp.Result().(*PinResponse)
	self.log.WithField("hash", out.IpfsHash).WithField("file", fileName).Debug("Pinned file")
	return
}

// Pins an arbitrary JSON document
func (self *Client) PinJSON(ctx context.Context, body interface{}) (out *PinResponse, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&PinResponse{}).
		Post("/pinning/pinJSONToIPFS")
	if err != nil {
		return
	}

	out = resp.Result().(*PinResponse)
	self.log.WithField("hash", out.IpfsHash).Debug("Pinned JSON")
	return
}

// Resolves an ipfs:// URI into the metadata document it points to
func (self *Client) FetchMetadata(ctx context.Context, uri string) (out map[string]interface{}, err error) {
	if !strings.HasPrefix(uri, "ipfs://") {
		return nil, fmt.Errorf("not an ipfs uri: %s", uri)
	}
	hash := strings.TrimPrefix(uri, "ipfs://")

	if cached, ok := self.metadataCache.Get(hash); ok {
		return cached.(map[string]interface{}), nil
	}

	resp, err := self.gateway.R().
		SetContext(ctx).
		SetResult(&map[string]interface{}{}).
		SetPathParam("hash", hash).
		Get("/{hash}")
	if err != nil {
		return
	}

	out = *resp.Result().(*map[string]interface{})
	self.metadataCache.SetDefault(hash, out)
	return
}
