package nft

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/model"
	"github.com/forestledger/backend/src/utils/monitor"
	"github.com/forestledger/backend/src/utils/pinata"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/Peersyst/xrpl-go/xrpl/wallet"
	"github.com/jackc/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"go.uber.org/atomic"
)

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

type ServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config

	store   *stubStore
	pinner  *stubPinner
	ledger  *stubLedger
	monitor *monitor.Monitor
	service *Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.config = config.Default()

	s.store = &stubStore{requests: make(map[int]*model.NFTRequest)}
	s.pinner = &stubPinner{}
	s.ledger = &stubLedger{}
	s.monitor = monitor.NewMonitor().WithMaxHistorySize(3)

	s.service = NewService(s.config).
		WithStore(s.store).
		WithPinner(s.pinner).
		WithLedger(s.ledger).
		WithIssuer(nil).
		WithMonitor(s.monitor)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.cancel()
}

func (s *ServiceTestSuite) upload(content string) string {
	path := filepath.Join(s.T().TempDir(), "image.png")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.Nil(s.T(), err)
	return path
}

func (s *ServiceTestSuite) pendingRequest(status string) *model.NFTRequest {
	metadata := NewMetadata("ipfs://QmImage", AttributeFields{Hectares: "10"})
	buf, err := json.Marshal(metadata)
	assert.Nil(s.T(), err)

	request := &model.NFTRequest{
		ID:            1,
		UserId:        "user-1",
		WalletAddress: "rRequester",
		Metadata:      pgtype.JSONB{Bytes: buf, Status: pgtype.Present},
		Status:        status,
	}
	s.store.requests[request.ID] = request
	return request
}

func (s *ServiceTestSuite) TestCreateRequest() {
	path := s.upload("image bytes")

	request, err := s.service.CreateRequest(s.ctx, CreateRequestParams{
		UserId:        "user-1",
		WalletAddress: "rRequester",
		ImagePath:     path,
		ImageName:     "image.png",
		Fields:        AttributeFields{Hectares: "10"},
	})
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusPending, request.Status)
	assert.Equal(s.T(), 1, s.pinner.filePins)
	assert.Equal(s.T(), uint64(1), s.monitor.GetReport().Pinning.State.FilesPinned.Load())

	var metadata Metadata
	err = json.Unmarshal(request.Metadata.Bytes, &metadata)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "ipfs://QmFile", metadata.Image)
	assert.Len(s.T(), metadata.Attributes, 7)

	// The buffered upload is gone
	_, err = os.Stat(path)
	assert.True(s.T(), os.IsNotExist(err))
}

func (s *ServiceTestSuite) TestCreateRequestCleansUpOnPinFailure() {
	path := s.upload("image bytes")
	s.pinner.pinErr = errors.New("pinata is down")

	_, err := s.service.CreateRequest(s.ctx, CreateRequestParams{
		UserId:        "user-1",
		WalletAddress: "rRequester",
		ImagePath:     path,
		ImageName:     "image.png",
	})
	assert.True(s.T(), errors.Is(err, ErrPinFailed))
	assert.Empty(s.T(), s.store.requests)

	// Failed uploads are not kept around either
	_, err = os.Stat(path)
	assert.True(s.T(), os.IsNotExist(err))
}

func (s *ServiceTestSuite) TestApproveRequest() {
	s.pendingRequest(model.StatusPending)

	approval, err := s.service.ApproveRequest(s.ctx, 1)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusApproved, approval.Request.Status)
	assert.Equal(s.T(), "ipfs://QmJson", approval.MetadataURI)
	assert.Equal(s.T(), "MINTED-TOKEN", approval.NFTokenID)
	assert.Equal(s.T(), 1, s.pinner.jsonPins)
	assert.Equal(s.T(), uint64(1), s.monitor.GetReport().Pinning.State.DocumentsPinned.Load())

	// The URI reaches the ledger hex encoded
	decoded, err := hex.DecodeString(s.ledger.lastMintURI)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "ipfs://QmJson", string(decoded))

	// The sell offer is directed at the requester
	assert.Equal(s.T(), "MINTED-TOKEN", s.ledger.lastOfferToken)
	assert.Equal(s.T(), "rRequester", s.ledger.lastOfferDestination)
}

func (s *ServiceTestSuite) TestApproveUnknownRequest() {
	_, err := s.service.ApproveRequest(s.ctx, 42)
	assert.Equal(s.T(), ErrNotFound, err)
}

func (s *ServiceTestSuite) TestRejectPermissiveByDefault() {
	s.pendingRequest(model.StatusApproved)

	request, err := s.service.RejectRequest(s.ctx, 1)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), model.StatusRejected, request.Status)
}

func (s *ServiceTestSuite) TestStrictTransitions() {
	s.config.Gateway.StrictStatusTransitions = true
	s.pendingRequest(model.StatusApproved)

	_, err := s.service.ApproveRequest(s.ctx, 1)
	assert.Equal(s.T(), ErrInvalidTransition, err)

	_, err = s.service.RejectRequest(s.ctx, 1)
	assert.Equal(s.T(), ErrInvalidTransition, err)
}

func (s *ServiceTestSuite) TestAccountNFTs() {
	s.ledger.nfts = []xrpl.AccountNFT{
		{NFTokenID: "N1", URI: strToHex("ipfs://QmMeta")},
		{NFTokenID: "N2", URI: strToHex("https://example.com/meta.json")},
	}
	s.pinner.metadata = map[string]interface{}{"name": "Preservation Certificate"}

	nfts, err := s.service.AccountNFTs(s.ctx, "rOwner")
	assert.Nil(s.T(), err)
	assert.Len(s.T(), nfts, 2)

	assert.Equal(s.T(), "ipfs://QmMeta", nfts[0].DecodedURI)
	assert.Equal(s.T(), "Preservation Certificate", nfts[0].Metadata["name"])

	// Non ipfs URIs are decoded but never fetched
	assert.Equal(s.T(), "https://example.com/meta.json", nfts[1].DecodedURI)
	assert.Nil(s.T(), nfts[1].Metadata)
	assert.Equal(s.T(), int64(1), s.pinner.fetches.Load())
}

func (s *ServiceTestSuite) TestAccountNFTsKeepsLedgerOrder() {
	for i := 0; i < 20; i++ {
		s.ledger.nfts = append(s.ledger.nfts, xrpl.AccountNFT{
			NFTokenID: fmt.Sprintf("N%d", i),
			URI:       strToHex(fmt.Sprintf("ipfs://Qm%d", i)),
		})
	}
	s.pinner.metadata = map[string]interface{}{"name": "Preservation Certificate"}

	nfts, err := s.service.AccountNFTs(s.ctx, "rOwner")
	assert.Nil(s.T(), err)
	assert.Len(s.T(), nfts, 20)

	for i, nft := range nfts {
		assert.Equal(s.T(), fmt.Sprintf("N%d", i), nft.NFTokenID)
		assert.Equal(s.T(), fmt.Sprintf("ipfs://Qm%d", i), nft.DecodedURI)
		assert.NotNil(s.T(), nft.Metadata)
	}
	assert.Equal(s.T(), int64(20), s.pinner.fetches.Load())
}

func (s *ServiceTestSuite) TestAccountNFTsToleratesFetchFailure() {
	s.ledger.nfts = []xrpl.AccountNFT{
		{NFTokenID: "N1", URI: strToHex("ipfs://QmMeta")},
	}
	s.pinner.fetchErr = errors.New("gateway timeout")

	nfts, err := s.service.AccountNFTs(s.ctx, "rOwner")
	assert.Nil(s.T(), err)
	assert.Len(s.T(), nfts, 1)
	assert.Nil(s.T(), nfts[0].Metadata)
	assert.Equal(s.T(), int64(1), s.monitor.GetReport().Pinning.Errors.FetchError.Load())
}

func strToHex(in string) string {
	return hex.EncodeToString([]byte(in))
}

// ---- Stubs ----

type stubStore struct {
	requests map[int]*model.NFTRequest
	nextId   int
}

func (self *stubStore) Create(ctx context.Context, userId, walletAddress string, metadata *Metadata) (*model.NFTRequest, error) {
	buf, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	self.nextId++
	request := &model.NFTRequest{
		ID:            self.nextId,
		UserId:        userId,
		WalletAddress: walletAddress,
		Metadata:      pgtype.JSONB{Bytes: buf, Status: pgtype.Present},
		Status:        model.StatusPending,
	}
	self.requests[request.ID] = request
	return request, nil
}

func (self *stubStore) List(ctx context.Context, status string) (out []*model.NFTRequest, err error) {
	for _, request := range self.requests {
		if status == "" || request.Status == status {
			out = append(out, request)
		}
	}
	return
}

func (self *stubStore) GetById(ctx context.Context, id int) (*model.NFTRequest, error) {
	request, ok := self.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return request, nil
}

func (self *stubStore) ListByUser(ctx context.Context, userId string) (out []*model.NFTRequest, err error) {
	for _, request := range self.requests {
		if request.UserId == userId {
			out = append(out, request)
		}
	}
	return
}

func (self *stubStore) ListByWallet(ctx context.Context, walletAddress string) (out []*model.NFTRequest, err error) {
	for _, request := range self.requests {
		if request.WalletAddress == walletAddress {
			out = append(out, request)
		}
	}
	return
}

func (self *stubStore) UpdateStatus(ctx context.Context, id int, status string) (*model.NFTRequest, error) {
	request, ok := self.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	request.Status = status
	return request, nil
}

type stubPinner struct {
	filePins int
	jsonPins int

	// Metadata is fetched from concurrent workers
	fetches atomic.Int64

	pinErr   error
	fetchErr error
	metadata map[string]interface{}
}

func (self *stubPinner) PinFile(ctx context.Context, filePath, fileName string) (*pinata.PinResponse, error) {
	if self.pinErr != nil {
		return nil, self.pinErr
	}
	self.filePins++
	return &pinata.PinResponse{IpfsHash: "QmFile"}, nil
}

func (self *stubPinner) PinJSON(ctx context.Context, body interface{}) (*pinata.PinResponse, error) {
	if self.pinErr != nil {
		return nil, self.pinErr
	}
	self.jsonPins++
	return &pinata.PinResponse{IpfsHash: "QmJson"}, nil
}

func (self *stubPinner) FetchMetadata(ctx context.Context, uri string) (map[string]interface{}, error) {
	if self.fetchErr != nil {
		return nil, self.fetchErr
	}
	self.fetches.Inc()
	return self.metadata, nil
}

type stubLedger struct {
	nfts []xrpl.AccountNFT

	lastMintURI          string
	lastOfferToken       string
	lastOfferDestination string
}

func (self *stubLedger) MintNFT(ctx context.Context, w *wallet.Wallet, uriHex string) (*xrpl.TxResult, error) {
	self.lastMintURI = uriHex
	return &xrpl.TxResult{
		Hash:         "MINT-HASH",
		Validated:    true,
		EngineResult: "tesSUCCESS",
		Meta:         json.RawMessage(`{"TransactionResult": "tesSUCCESS", "nftoken_id": "MINTED-TOKEN"}`),
	}, nil
}

func (self *stubLedger) CreateSellOffer(ctx context.Context, w *wallet.Wallet, nftokenId, destination string) (*xrpl.TxResult, error) {
	self.lastOfferToken = nftokenId
	self.lastOfferDestination = destination
	return &xrpl.TxResult{
		Hash:         "OFFER-HASH",
		Validated:    true,
		EngineResult: "tesSUCCESS",
	}, nil
}

func (self *stubLedger) AccountNFTs(ctx context.Context, address string) ([]xrpl.AccountNFT, error) {
	return self.nfts, nil
}
