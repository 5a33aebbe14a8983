package nft

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/model"
	"github.com/forestledger/backend/src/utils/monitor"
	"github.com/forestledger/backend/src/utils/monitor/report"
	"github.com/forestledger/backend/src/utils/pinata"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/Peersyst/xrpl-go/xrpl/wallet"
	"github.com/gammazero/workerpool"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidTransition = errors.New("request is not pending")

	// The pinning service failed, nothing was persisted or minted
	ErrPinFailed = errors.New("pinning failed")
)

// Ledger operations the lifecycle depends on
type Ledger interface {
	MintNFT(ctx context.Context, w *wallet.Wallet, uriHex string) (*xrpl.TxResult, error)
	CreateSellOffer(ctx context.Context, w *wallet.Wallet, nftokenId, destination string) (*xrpl.TxResult, error)
	AccountNFTs(ctx context.Context, address string) ([]xrpl.AccountNFT, error)
}

// Pinning operations the lifecycle depends on
type Pinner interface {
	PinFile(ctx context.Context, filePath, fileName string) (*pinata.PinResponse, error)
	PinJSON(ctx context.Context, body interface{}) (*pinata.PinResponse, error)
	FetchMetadata(ctx context.Context, uri string) (map[string]interface{}, error)
}

// Storage operations the lifecycle depends on
type Requests interface {
	Create(ctx context.Context, userId, walletAddress string, metadata *Metadata) (*model.NFTRequest, error)
	List(ctx context.Context, status string) ([]*model.NFTRequest, error)
	GetById(ctx context.Context, id int) (*model.NFTRequest, error)
	ListByUser(ctx context.Context, userId string) ([]*model.NFTRequest, error)
	ListByWallet(ctx context.Context, walletAddress string) ([]*model.NFTRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) (*model.NFTRequest, error)
}

// Orchestrates the request/approve/reject/mint flow across the store, the
// pinning service and the ledger
type Service struct {
	config *config.Config
	log    *logrus.Entry

	store  Requests
	pinner Pinner
	ledger Ledger
	issuer *wallet.Wallet

	report *report.Report
}

func NewService(config *config.Config) (self *Service) {
	self = new(Service)
	self.config = config
	self.log = logger.NewSublogger("nft-service")

	// Counters end up here until a monitor is wired in
	self.report = report.NewReport()
	return
}

func (self *Service) WithStore(store Requests) *Service {
	self.store = store
	return self
}

func (self *Service) WithPinner(pinner Pinner) *Service {
	self.pinner = pinner
	return self
}

func (self *Service) WithLedger(ledger Ledger) *Service {
	self.ledger = ledger
	return self
}

func (self *Service) WithIssuer(issuer *wallet.Wallet) *Service {
	self.issuer = issuer
	return self
}

func (self *Service) WithMonitor(monitor *monitor.Monitor) *Service {
	self.report = monitor.GetReport()
	return self
}

type CreateRequestParams struct {
	UserId        string
	WalletAddress string

	// Locally buffered upload, removed after the pinning attempt
	ImagePath string
	ImageName string

	Fields AttributeFields
}

// Pins the image, builds the certificate document and persists a pending
// request. The buffered upload file is deleted no matter the outcome.
func (self *Service) CreateRequest(ctx context.Context, params CreateRequestParams) (out *model.NFTRequest, err error) {
	defer self.cleanupFile(params.ImagePath)

	pinned, err := self.pinner.PinFile(ctx, params.ImagePath, params.ImageName)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPinFailed, err)
		return
	}
	self.report.Pinning.State.FilesPinned.Inc()

	metadata := NewMetadata(pinned.URI(), params.Fields)

	return self.store.Create(ctx, params.UserId, params.WalletAddress, metadata)
}

func (self *Service) ListRequests(ctx context.Context, status string) ([]*model.NFTRequest, error) {
	return self.store.List(ctx, status)
}

func (self *Service) GetRequest(ctx context.Context, id int) (*model.NFTRequest, error) {
	return self.store.GetById(ctx, id)
}

func (self *Service) ListUserRequests(ctx context.Context, userId string) ([]*model.NFTRequest, error) {
	return self.store.ListByUser(ctx, userId)
}

func (self *Service) ListWalletRequests(ctx context.Context, walletAddress string) ([]*model.NFTRequest, error) {
	return self.store.ListByWallet(ctx, walletAddress)
}

type ApprovalResult struct {
	Request     *model.NFTRequest `json:"request"`
	MetadataURI string            `json:"metadataURI"`
	NFTokenID   string            `json:"nft_id"`
	MintTx      *xrpl.TxResult    `json:"mint_tx"`
	OfferTx     *xrpl.TxResult    `json:"offer_tx"`
}

// Approves a request: pins its metadata, mints the NFT and creates a
// directed zero amount sell offer for the requester's wallet. The request
// ends up approved, the actual transfer happens when the requester
// accepts the offer from the mobile wallet.
//
// Metadata is re-pinned on every call, so approving twice mints two
// independent NFTs with two fresh content ids.
func (self *Service) ApproveRequest(ctx context.Context, id int) (out *ApprovalResult, err error) {
	request, err := self.store.GetById(ctx, id)
	if err != nil {
		return
	}

	if self.config.Gateway.StrictStatusTransitions && request.Status != model.StatusPending {
		return nil, ErrInvalidTransition
	}

	var metadata Metadata
	err = json.Unmarshal(request.Metadata.Bytes, &metadata)
	if err != nil {
		return
	}

	pinned, err := self.pinner.PinJSON(ctx, &metadata)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPinFailed, err)
		return
	}
	self.report.Pinning.State.DocumentsPinned.Inc()
	metadataURI := pinned.URI()

	mintTx, err := self.ledger.MintNFT(ctx, self.issuer, hexEncodeURI(metadataURI))
	if err != nil {
		return
	}

	nftokenId, err := xrpl.NFTokenIDFromMeta(mintTx.Meta)
	if err != nil {
		return
	}

	offerTx, err := self.ledger.CreateSellOffer(ctx, self.issuer, nftokenId, request.WalletAddress)
	if err != nil {
		return
	}

	request, err = self.store.UpdateStatus(ctx, id, model.StatusApproved)
	if err != nil {
		return
	}

	self.log.WithField("id", id).
		WithField("nftoken_id", nftokenId).
		Info("Approved request")

	out = &ApprovalResult{
		Request:     request,
		MetadataURI: metadataURI,
		NFTokenID:   nftokenId,
		MintTx:      mintTx,
		OfferTx:     offerTx,
	}
	return
}

func (self *Service) RejectRequest(ctx context.Context, id int) (out *model.NFTRequest, err error) {
	if self.config.Gateway.StrictStatusTransitions {
		var request *model.NFTRequest
		request, err = self.store.GetById(ctx, id)
		if err != nil {
			return
		}
		if request.Status != model.StatusPending {
			return nil, ErrInvalidTransition
		}
	}

	return self.store.UpdateStatus(ctx, id, model.StatusRejected)
}

type MintParams struct {
	ImagePath string
	ImageName string
	Fields    AttributeFields
}

type MintResult struct {
	MetadataURI string         `json:"metadataURI"`
	MintTx      *xrpl.TxResult `json:"mintResponse"`
}

// Mints immediately without going through the request lifecycle
func (self *Service) MintDirect(ctx context.Context, params MintParams) (out *MintResult, err error) {
	defer self.cleanupFile(params.ImagePath)

	pinnedImage, err := self.pinner.PinFile(ctx, params.ImagePath, params.ImageName)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPinFailed, err)
		return
	}
	self.report.Pinning.State.FilesPinned.Inc()

	metadata := NewMetadata(pinnedImage.URI(), params.Fields)

	pinnedMetadata, err := self.pinner.PinJSON(ctx, metadata)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPinFailed, err)
		return
	}
	self.report.Pinning.State.DocumentsPinned.Inc()
	metadataURI := pinnedMetadata.URI()

	mintTx, err := self.ledger.MintNFT(ctx, self.issuer, hexEncodeURI(metadataURI))
	if err != nil {
		return
	}

	out = &MintResult{
		MetadataURI: metadataURI,
		MintTx:      mintTx,
	}
	return
}

// NFT owned by an account together with its resolved metadata
type EnrichedNFT struct {
	xrpl.AccountNFT
	DecodedURI string                 `json:"decodedURI,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Upper bound on concurrent metadata downloads per listing
const metadataFetchWorkers = 4

// Lists NFTs owned by an account, resolving each token's metadata
// document where possible. Unresolvable metadata is skipped, not fatal.
// Documents are fetched concurrently, the ledger's ordering is kept.
func (self *Service) AccountNFTs(ctx context.Context, address string) (out []EnrichedNFT, err error) {
	nfts, err := self.ledger.AccountNFTs(ctx, address)
	if err != nil {
		return
	}

	out = make([]EnrichedNFT, len(nfts))
	pool := workerpool.New(metadataFetchWorkers)
	for i, nft := range nfts {
		pool.Submit(func() {
			out[i] = self.enrich(ctx, nft)
		})
	}
	pool.StopWait()
	return
}

func (self *Service) enrich(ctx context.Context, nft xrpl.AccountNFT) (out EnrichedNFT) {
	out = EnrichedNFT{AccountNFT: nft}

	decoded, err := hex.DecodeString(nft.URI)
	if err != nil {
		return
	}
	out.DecodedURI = string(decoded)

	if !strings.HasPrefix(out.DecodedURI, "ipfs://") {
		return
	}

	metadata, err := self.pinner.FetchMetadata(ctx, out.DecodedURI)
	if err != nil {
		self.report.Pinning.Errors.FetchError.Inc()
		self.log.WithError(err).
			WithField("uri", out.DecodedURI).
			Warn("Failed to resolve NFT metadata")
		return
	}
	out.Metadata = metadata
	return
}

func (self *Service) cleanupFile(path string) {
	if path == "" {
		return
	}
	err := os.Remove(path)
	if err != nil {
		self.log.WithError(err).WithField("path", path).Warn("Failed to cleanup uploaded file")
	}
}

func hexEncodeURI(uri string) string {
	return strings.ToUpper(hex.EncodeToString([]byte(uri)))
}
