package token

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/task"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/Peersyst/xrpl-go/xrpl/wallet"
	"github.com/sirupsen/logrus"
)

// Ledger operations the token service depends on
type Ledger interface {
	AccountExists(ctx context.Context, address string) (bool, error)
	FundWallet(ctx context.Context, address string) (*xrpl.FaucetResponse, error)
	ConfigureIssuer(ctx context.Context, w *wallet.Wallet, domainHex string, tickSize uint8) (*xrpl.TxResult, error)
	SetTrustLine(ctx context.Context, w *wallet.Wallet, issuer, currency, limit string) (*xrpl.TxResult, error)
	SendTokens(ctx context.Context, w *wallet.Wallet, destination, currency, value, issuer string) (*xrpl.TxResult, error)
	LineBalance(ctx context.Context, address, currency, issuer string) (string, error)
	AccountLines(ctx context.Context, address, peer string) ([]xrpl.AccountLine, error)
}

// Issuance and transfer of the trust line based fungible token
type Service struct {
	config *config.Config
	log    *logrus.Entry

	ledger Ledger
}

func NewService(config *config.Config) (self *Service) {
	self = new(Service)
	self.config = config
	self.log = logger.NewSublogger("token-service")
	return
}

func (self *Service) WithLedger(ledger Ledger) *Service {
	self.ledger = ledger
	return self
}

type WalletInfo struct {
	Address string `json:"address"`
	Seed    string `json:"seed,omitempty"`
	Balance string `json:"balance,omitempty"`
}

type ProvisionResult struct {
	Currency   string     `json:"currency"`
	ColdWallet WalletInfo `json:"coldWallet"`
	HotWallet  WalletInfo `json:"hotWallet"`
}

// One-shot bootstrap of the token: issuer (cold) and operational (hot)
// wallets from configured seeds or freshly generated, faucet funding for
// unfunded accounts, issuer settings, the hot wallet trust line and the
// initial supply. Reuses existing accounts when seeds are configured, so
// re-running it is safe in that respect only.
func (self *Service) Provision(ctx context.Context) (out *ProvisionResult, err error) {
	cold, err := self.walletFromSeedOrGenerate(self.config.Token.ColdWalletSeed, "cold")
	if err != nil {
		return
	}

	hot, err := self.walletFromSeedOrGenerate(self.config.Token.HotWalletSeed, "hot")
	if err != nil {
		return
	}

	err = self.ensureFunded(ctx, cold.GetAddress().String())
	if err != nil {
		return
	}
	err = self.ensureFunded(ctx, hot.GetAddress().String())
	if err != nil {
		return
	}

	domainHex := strings.ToUpper(hex.EncodeToString([]byte(self.config.Token.Domain)))
	_, err = self.ledger.ConfigureIssuer(ctx, cold, domainHex, self.config.Token.TickSize)
	if err != nil {
		return
	}

	currency := self.config.Token.Currency

	_, err = self.ledger.SetTrustLine(ctx, hot, cold.GetAddress().String(), currency, self.config.Token.TrustLineLimit)
	if err != nil {
		return
	}

	_, err = self.ledger.SendTokens(ctx, cold, hot.GetAddress().String(), currency,
		self.config.Token.InitialSupply, cold.GetAddress().String())
	if err != nil {
		return
	}

	balance, err := self.ledger.LineBalance(ctx, hot.GetAddress().String(), currency, cold.GetAddress().String())
	if err != nil {
		return
	}

	out = &ProvisionResult{
		Currency: currency,
		ColdWallet: WalletInfo{
			Address: cold.GetAddress().String(),
			Seed:    cold.Seed,
		},
		HotWallet: WalletInfo{
			Address: hot.GetAddress().String(),
			Seed:    hot.Seed,
			Balance: balance,
		},
	}
	return
}

func (self *Service) walletFromSeedOrGenerate(seed, kind string) (out *wallet.Wallet, err error) {
	if seed != "" {
		w, e := xrpl.WalletFromSeed(seed)
		if e != nil {
			return nil, e
		}
		self.log.WithField("address", w.GetAddress().String()).
			WithField("kind", kind).
			Info("Using configured wallet")
		return &w, nil
	}

	w, err := xrpl.GenerateWallet()
	if err != nil {
		return
	}
	// The generated seed is returned to the operator once and has to be
	// saved, otherwise the issued supply becomes inaccessible
	self.log.WithField("address", w.GetAddress().String()).
		WithField("kind", kind).
		Warn("Generated new wallet, save its seed")
	return &w, nil
}

func (self *Service) ensureFunded(ctx context.Context, address string) (err error) {
	exists, err := self.ledger.AccountExists(ctx, address)
	if err != nil {
		return
	}
	if exists {
		return
	}

	self.log.WithField("address", address).Info("Funding account through faucet")
	_, err = self.ledger.FundWallet(ctx, address)
	if err != nil {
		return
	}

	// The account appears on the ledger a few validated ledgers after the
	// faucet payment
	return task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(2 * time.Minute).
		WithMaxInterval(5 * time.Second).
		WithOnError(func(err error) {
			self.log.WithError(err).Debug("Account not active yet")
		}).
		Run(func() error {
			exists, e := self.ledger.AccountExists(ctx, address)
			if e != nil {
				return e
			}
			if !exists {
				return xrpl.ErrAccountNotFound
			}
			return nil
		})
}

func (self *Service) Balance(ctx context.Context, address, currency, issuer string) (string, error) {
	return self.ledger.LineBalance(ctx, address, currency, issuer)
}

// Sends issued tokens after explicitly checking that the destination
// exists and trusts the currency. Relying on the payment's own failure
// would burn the fee and produce a worse error.
func (self *Service) Send(ctx context.Context, hotWalletSeed, destination, currency, value, issuer string) (out *xrpl.TxResult, err error) {
	hot, err := xrpl.WalletFromSeed(hotWalletSeed)
	if err != nil {
		return
	}

	lines, err := self.ledger.AccountLines(ctx, destination, issuer)
	if err != nil {
		return
	}

	hasTrustLine := false
	for _, line := range lines {
		if line.Currency == currency {
			hasTrustLine = true
			break
		}
	}
	if !hasTrustLine {
		return nil, xrpl.ErrNoTrustLine
	}

	return self.ledger.SendTokens(ctx, &hot, destination, currency, value, issuer)
}

func (self *Service) TrustLine(ctx context.Context, walletSeed, issuer, currency, limit string) (out *xrpl.TxResult, err error) {
	w, err := xrpl.WalletFromSeed(walletSeed)
	if err != nil {
		return
	}

	return self.ledger.SetTrustLine(ctx, &w, issuer, currency, limit)
}
