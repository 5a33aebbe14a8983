package pinata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/forestledger/backend/src/utils/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config

	api     *httptest.Server
	gateway *httptest.Server
	client  *Client

	gatewayHits int
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.config = config.Default()
	s.gatewayHits = 0

	s.api = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Pinata authenticates with these two headers
		assert.Equal(s.T(), "test-key", r.Header.Get("pinata_api_key"))
		assert.Equal(s.T(), "test-secret", r.Header.Get("pinata_secret_api_key"))

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/pinning/pinFileToIPFS":
			err := r.ParseMultipartForm(1 << 20)
			assert.Nil(s.T(), err)
			_, _, err = r.FormFile("file")
			assert.Nil(s.T(), err)

			_, _ = w.Write([]byte(`{"IpfsHash": "QmFile", "PinSize": 10, "Timestamp": "2024-01-01T00:00:00Z"}`))
		case "/pinning/pinJSONToIPFS":
			var body map[string]interface{}
			err := json.NewDecoder(r.Body).Decode(&body)
			assert.Nil(s.T(), err)

			_, _ = w.Write([]byte(`{"IpfsHash": "QmJson", "PinSize": 5, "Timestamp": "2024-01-01T00:00:00Z"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	s.gateway = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.gatewayHits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Preservation Certificate"}`))
	}))

	s.config.Pinata.Url = s.api.URL
	s.config.Pinata.GatewayUrl = s.gateway.URL
	s.config.Pinata.ApiKey = "test-key"
	s.config.Pinata.SecretApiKey = "test-secret"
	s.client = NewClient(&s.config.Pinata)
}

func (s *ClientTestSuite) TearDownTest() {
	s.api.Close()
	s.gateway.Close()
	s.cancel()
}

func (s *ClientTestSuite) TestPinFile() {
	path := filepath.Join(s.T().TempDir(), "image.png")
	err := os.WriteFile(path, []byte("not really a png"), 0o644)
	assert.Nil(s.T(), err)

	out, err := s.client.PinFile(s.ctx, path, "image.png")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "QmFile", out.IpfsHash)
	assert.Equal(s.T(), "ipfs://QmFile", out.URI())
}

func (s *ClientTestSuite) TestPinJSON() {
	out, err := s.client.PinJSON(s.ctx, map[string]interface{}{"name": "test"})
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "QmJson", out.IpfsHash)
	assert.Equal(s.T(), "ipfs://QmJson", out.URI())
}

func (s *ClientTestSuite) TestFetchMetadata() {
	out, err := s.client.FetchMetadata(s.ctx, "ipfs://QmMeta")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "Preservation Certificate", out["name"])

	// Pinned content is immutable, the second read is served from cache
	_, err = s.client.FetchMetadata(s.ctx, "ipfs://QmMeta")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), 1, s.gatewayHits)
}

func (s *ClientTestSuite) TestFetchMetadataRejectsOtherSchemes() {
	_, err := s.client.FetchMetadata(s.ctx, "https://example.com/metadata.json")
	assert.NotNil(s.T(), err)
	assert.Equal(s.T(), 0, s.gatewayHits)
}
