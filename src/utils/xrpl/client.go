package xrpl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/logger"

	"github.com/Peersyst/xrpl-go/xrpl/transaction"
	txtypes "github.com/Peersyst/xrpl-go/xrpl/transaction/types"
	"github.com/Peersyst/xrpl-go/xrpl/wallet"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client is a long lived handle to a rippled JSON-RPC endpoint.
// Reads and submissions share one rate limited HTTP client, transactions
// are signed locally with the SDK wallet before submission. Every
// submission happens exactly once, a failed submit is reported to the
// caller and never replayed.
type Client struct {
	client *resty.Client
	faucet *resty.Client
	config *config.Xrpl
	log    *logrus.Entry

	limiter *rate.Limiter
}

func NewClient(config *config.Xrpl) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("xrpl-client")

	self.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)

	self.client = resty.New().
		SetBaseURL(config.NodeUrl).
		SetTimeout(config.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(self.onRateLimit).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.IsSuccess() {
				return nil
			}
			return fmt.Errorf("unexpected status: %s", resp.Status())
		})

	self.faucet = resty.New().
		SetTimeout(config.RequestTimeout)

	return
}

func (self *Client) onRateLimit(c *resty.Client, req *resty.Request) (err error) {
	return self.limiter.Wait(req.Context())
}

// Performs one JSON-RPC call and decodes the result envelope.
// A result with status "error" is mapped to a typed error.
func (self *Client) call(ctx context.Context, method string, params interface{}, out interface{}) (err error) {
	req := rpcRequest{Method: method}
	if params != nil {
		req.Params = []interface{}{params}
	}

	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(&req).
		SetResult(&rpcResponse{}).
		Post("/")
	if err != nil {
		return
	}

	envelope := resp.Result().(*rpcResponse)

	var base resultBase
	err = json.Unmarshal(envelope.Result, &base)
	if err != nil {
		return
	}
	if base.Status == "error" {
		return mapRPCError(base.Error, base.ErrorMessage)
	}

	return json.Unmarshal(envelope.Result, out)
}

// ---- Read only queries ----

func (self *Client) AccountInfo(ctx context.Context, address string) (sequence uint32, balance string, err error) {
	var result accountInfoResult
	err = self.call(ctx, "account_info", map[string]interface{}{
		"account":      address,
		"ledger_index": "current",
	}, &result)
	if err != nil {
		return
	}

	sequence = result.AccountData.Sequence
	balance = result.AccountData.Balance
	return
}

func (self *Client) AccountExists(ctx context.Context, address string) (exists bool, err error) {
	_, _, err = self.AccountInfo(ctx, address)
	if err == ErrAccountNotFound {
		return false, nil
	}
	if err != nil {
		return
	}
	return true, nil
}

func (self *Client) AccountNFTs(ctx context.Context, address string) (nfts []AccountNFT, err error) {
	var result accountNFTsResult
	err = self.call(ctx, "account_nfts", map[string]interface{}{
		"account": address,
	}, &result)
	if err != nil {
		return
	}
	nfts = result.AccountNFTs
	return
}

func (self *Client) AccountLines(ctx context.Context, address, peer string) (lines []AccountLine, err error) {
	params := map[string]interface{}{
		"account": address,
	}
	if peer != "" {
		params["peer"] = peer
	}

	var result accountLinesResult
	err = self.call(ctx, "account_lines", params, &result)
	if err != nil {
		return
	}
	lines = result.Lines
	return
}

// Balance of one issued currency, "0" when no matching line exists
func (self *Client) LineBalance(ctx context.Context, address, currency, issuer string) (balance string, err error) {
	lines, err := self.AccountLines(ctx, address, issuer)
	if err != nil {
		return
	}

	for _, line := range lines {
		if line.Currency == currency {
			return line.Balance, nil
		}
	}
	return "0", nil
}

// All pending NFT offers relevant for an account: offers the account owns
// plus sell offers on the issuer's NFTs directed at the account. The two
// sources are concatenated as-is, overlapping entries are kept.
func (self *Client) PendingOffers(ctx context.Context, address, issuer string) (offers []NFTOffer, err error) {
	offers = make([]NFTOffer, 0)

	var owned accountObjectsResult
	err = self.call(ctx, "account_objects", map[string]interface{}{
		"account": address,
		"type":    "nft_offer",
	}, &owned)
	if err != nil {
		// An unfunded account has no offers but is not an error here
		if err != ErrAccountNotFound {
			return
		}
		err = nil
	}
	for _, object := range owned.AccountObjects {
		if object.LedgerEntryType != "NFTokenOffer" {
			continue
		}
		offers = append(offers, NFTOffer{
			Index:       object.Index,
			NFTokenID:   object.NFTokenID,
			Amount:      object.Amount,
			Owner:       object.Owner,
			Destination: object.Destination,
		})
	}

	if issuer == "" {
		return
	}

	issuerNFTs, err := self.AccountNFTs(ctx, issuer)
	if err != nil {
		return
	}

	for _, nft := range issuerNFTs {
		var sellOffers nftSellOffersResult
		err = self.call(ctx, "nft_sell_offers", map[string]interface{}{
			"nft_id": nft.NFTokenID,
		}, &sellOffers)
		if err != nil {
			// No offer object for this token
			if err == ErrEntryNotFound {
				err = nil
				continue
			}
			return
		}

		for _, offer := range sellOffers.Offers {
			if offer.Destination != address {
				continue
			}
			offers = append(offers, NFTOffer{
				Index:       offer.Index,
				NFTokenID:   nft.NFTokenID,
				Amount:      offer.Amount,
				Owner:       offer.Owner,
				Destination: offer.Destination,
			})
		}
	}

	return
}

const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
)

// Polls whether an offer entry is still present in ledger state.
// Presence means pending, a missing entry means the offer was accepted or
// cancelled. Any other failure is returned as an error instead of being
// conflated with acceptance.
func (self *Client) OfferStatus(ctx context.Context, offerId string) (status string, err error) {
	var result ledgerEntryResult
	err = self.call(ctx, "ledger_entry", map[string]interface{}{
		"index":        offerId,
		"ledger_index": "validated",
	}, &result)

	if err == ErrEntryNotFound {
		return OfferStatusAccepted, nil
	}
	if err != nil {
		return
	}
	return OfferStatusPending, nil
}

// ---- Transactions ----

// Mints a transferable NFT with zero transfer fee and taxon 0.
// The URI has to be hex encoded already.
func (self *Client) MintNFT(ctx context.Context, w *wallet.Wallet, uriHex string) (out *TxResult, err error) {
	tx := &transaction.NFTokenMint{
		BaseTx: transaction.BaseTx{
			Account: w.GetAddress(),
		},
		// A nil TransferFee means the issuer takes no cut on resales
		NFTokenTaxon: 0,
		URI:          txtypes.NFTokenURI(uriHex),
	}
	tx.SetTransferableFlag()

	return self.submitAndWait(ctx, w, tx.Flatten())
}

// Creates a zero amount sell offer restricted to the given destination,
// effectively a directed gift only that account may accept
func (self *Client) CreateSellOffer(ctx context.Context, w *wallet.Wallet, nftokenId, destination string) (out *TxResult, err error) {
	tx := &transaction.NFTokenCreateOffer{
		BaseTx: transaction.BaseTx{
			Account: w.GetAddress(),
		},
		NFTokenID:   txtypes.NFTokenID(nftokenId),
		Amount:      txtypes.XRPCurrencyAmount(0),
		Destination: txtypes.Address(destination),
	}
	tx.SetSellNFTokenFlag()

	return self.submitAndWait(ctx, w, tx.Flatten())
}

func (self *Client) SetTrustLine(ctx context.Context, w *wallet.Wallet, issuer, currency, limit string) (out *TxResult, err error) {
	tx := &transaction.TrustSet{
		BaseTx: transaction.BaseTx{
			Account: w.GetAddress(),
		},
		LimitAmount: txtypes.IssuedCurrencyAmount{
			Currency: currency,
			Issuer:   txtypes.Address(issuer),
			Value:    limit,
		},
	}

	return self.submitAndWait(ctx, w, tx.Flatten())
}

// Issued currency payment, used both for issuing from the cold wallet and
// for transfers from the hot wallet
func (self *Client) SendTokens(ctx context.Context, w *wallet.Wallet, destination, currency, value, issuer string) (out *TxResult, err error) {
	tx := &transaction.Payment{
		BaseTx: transaction.BaseTx{
			Account: w.GetAddress(),
		},
		Destination: txtypes.Address(destination),
		Amount: txtypes.IssuedCurrencyAmount{
			Currency: currency,
			Issuer:   txtypes.Address(issuer),
			Value:    value,
		},
	}

	return self.submitAndWait(ctx, w, tx.Flatten())
}

const asfDefaultRipple = 8

// Issuer account settings: no transfer fee, order book tick size, domain
// and the DefaultRipple flag required for issued currencies to move
// between third parties
func (self *Client) ConfigureIssuer(ctx context.Context, w *wallet.Wallet, domainHex string, tickSize uint8) (out *TxResult, err error) {
	tx := &transaction.AccountSet{
		BaseTx: transaction.BaseTx{
			Account: w.GetAddress(),
		},
	}

	flat := tx.Flatten()
	flat["TransferRate"] = 0
	flat["TickSize"] = tickSize
	flat["Domain"] = domainHex
	flat["SetFlag"] = asfDefaultRipple

	return self.submitAndWait(ctx, w, flat)
}

// Activates an account through the testnet faucet
func (self *Client) FundWallet(ctx context.Context, address string) (out *FaucetResponse, err error) {
	resp, err := self.faucet.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(&faucetRequest{Destination: address}).
		SetResult(&FaucetResponse{}).
		Post(self.config.FaucetUrl)
	if err != nil {
		return
	}
	if resp.IsError() {
		return nil, fmt.Errorf("faucet request failed: %s", resp.Status())
	}

	out = resp.Result().(*FaucetResponse)
	return
}

// Autofills sequence, fee and expiry, signs locally and submits.
// Blocks until the transaction is validated or its LastLedgerSequence
// passed. There is no resubmission, a transient failure surfaces as an
// error and a retried call would mint or offer a second time.
func (self *Client) submitAndWait(ctx context.Context, w *wallet.Wallet, flat transaction.FlatTransaction) (out *TxResult, err error) {
	sequence, _, err := self.AccountInfo(ctx, w.GetAddress().String())
	if err != nil {
		return
	}

	fee, err := self.openLedgerFee(ctx)
	if err != nil {
		return
	}

	var current ledgerCurrentResult
	err = self.call(ctx, "ledger_current", nil, &current)
	if err != nil {
		return
	}
	lastLedgerSequence := current.LedgerCurrentIndex + self.config.LedgerOffset

	flat["Sequence"] = sequence
	flat["Fee"] = fee
	flat["LastLedgerSequence"] = lastLedgerSequence

	blob, hash, err := w.Sign(flat)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrSigningFailed, err)
		return
	}

	var submitted submitResult
	err = self.call(ctx, "submit", map[string]interface{}{
		"tx_blob": blob,
	}, &submitted)
	if err != nil {
		return
	}

	self.log.WithField("hash", hash).
		WithField("engine_result", submitted.EngineResult).
		Debug("Submitted transaction")

	// tem and tef results are terminal, the transaction will never make it
	// into a ledger and polling for validation would only run into the
	// submit timeout. tec and ter results may still get validated.
	if strings.HasPrefix(submitted.EngineResult, "tem") ||
		strings.HasPrefix(submitted.EngineResult, "tef") {
		return nil, fmt.Errorf("transaction rejected: %s: %s",
			submitted.EngineResult, submitted.EngineResultMessage)
	}

	return self.waitForValidation(ctx, hash, lastLedgerSequence)
}

func (self *Client) openLedgerFee(ctx context.Context) (fee string, err error) {
	var result feeResult
	err = self.call(ctx, "fee", nil, &result)
	if err != nil {
		return
	}

	fee = result.Drops.OpenLedgerFee
	if fee == "" {
		fee = result.Drops.BaseFee
	}
	return
}

func (self *Client) waitForValidation(ctx context.Context, hash string, lastLedgerSequence uint32) (out *TxResult, err error) {
	ctx, cancel := context.WithTimeout(ctx, self.config.SubmitTimeout)
	defer cancel()

	ticker := time.NewTicker(self.config.SubmitPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		var result txResult
		err = self.call(ctx, "tx", map[string]interface{}{
			"transaction": hash,
		}, &result)
		if err != nil {
			if _, ok := err.(*RPCError); ok {
				// Transaction may not be visible yet
				continue
			}
			return
		}

		if result.Validated {
			var meta txMeta
			_ = json.Unmarshal(result.Meta, &meta)

			out = &TxResult{
				Hash:         result.Hash,
				LedgerIndex:  result.LedgerIndex,
				Validated:    true,
				EngineResult: meta.TransactionResult,
				Meta:         result.Meta,
			}

			if meta.TransactionResult != "tesSUCCESS" {
				err = fmt.Errorf("transaction failed: %s", meta.TransactionResult)
			}
			return
		}

		var current ledgerCurrentResult
		if e := self.call(ctx, "ledger_current", nil, &current); e == nil &&
			current.LedgerCurrentIndex > lastLedgerSequence {
			return nil, ErrTxExpired
		}
	}
}
