package token

import (
	"context"
	"testing"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/Peersyst/xrpl-go/xrpl/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

type ServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config

	ledger  *stubLedger
	service *Service

	seed string
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.config = config.Default()

	s.ledger = &stubLedger{
		lines:    make(map[string][]xrpl.AccountLine),
		balances: make(map[string]string),
	}
	s.service = NewService(s.config).WithLedger(s.ledger)

	w, err := xrpl.GenerateWallet()
	assert.Nil(s.T(), err)
	s.seed = w.Seed
}

func (s *ServiceTestSuite) TearDownTest() {
	s.cancel()
}

func (s *ServiceTestSuite) TestSendWithoutTrustLine() {
	s.ledger.lines["rDestination"] = []xrpl.AccountLine{
		{Account: "rIssuer", Currency: "ABC", Balance: "0", Limit: "100"},
	}

	_, err := s.service.Send(s.ctx, s.seed, "rDestination", "FLT", "10", "rIssuer")
	assert.Equal(s.T(), xrpl.ErrNoTrustLine, err)
	assert.Equal(s.T(), 0, s.ledger.payments)
}

func (s *ServiceTestSuite) TestSendToMissingAccount() {
	s.ledger.linesErr = xrpl.ErrAccountNotFound

	_, err := s.service.Send(s.ctx, s.seed, "rDoesNotExist", "FLT", "10", "rIssuer")
	assert.Equal(s.T(), xrpl.ErrAccountNotFound, err)
	assert.Equal(s.T(), 0, s.ledger.payments)
}

func (s *ServiceTestSuite) TestSend() {
	s.ledger.lines["rDestination"] = []xrpl.AccountLine{
		{Account: "rIssuer", Currency: "FLT", Balance: "0", Limit: "1000000000"},
	}

	tx, err := s.service.Send(s.ctx, s.seed, "rDestination", "FLT", "10", "rIssuer")
	assert.Nil(s.T(), err)
	assert.NotNil(s.T(), tx)
	assert.Equal(s.T(), 1, s.ledger.payments)
	assert.Equal(s.T(), "rDestination", s.ledger.lastPaymentDestination)
	assert.Equal(s.T(), "10", s.ledger.lastPaymentValue)
}

func (s *ServiceTestSuite) TestProvision() {
	s.ledger.balances["FLT"] = s.config.Token.InitialSupply

	result, err := s.service.Provision(s.ctx)
	assert.Nil(s.T(), err)

	assert.Equal(s.T(), "FLT", result.Currency)
	assert.NotEmpty(s.T(), result.ColdWallet.Address)
	assert.NotEmpty(s.T(), result.ColdWallet.Seed)
	assert.NotEmpty(s.T(), result.HotWallet.Address)
	assert.NotEmpty(s.T(), result.HotWallet.Seed)
	assert.Equal(s.T(), s.config.Token.InitialSupply, result.HotWallet.Balance)

	// Both generated wallets were funded through the faucet
	assert.Equal(s.T(), 2, s.ledger.funded)
	assert.Equal(s.T(), 1, s.ledger.issuerConfigs)
	assert.Equal(s.T(), 1, s.ledger.trustLines)
	assert.Equal(s.T(), 1, s.ledger.payments)

	// The initial supply is paid from the cold to the hot wallet
	assert.Equal(s.T(), result.HotWallet.Address, s.ledger.lastPaymentDestination)
	assert.Equal(s.T(), s.config.Token.InitialSupply, s.ledger.lastPaymentValue)
	assert.Equal(s.T(), result.ColdWallet.Address, s.ledger.lastPaymentIssuer)
}

func (s *ServiceTestSuite) TestProvisionReusesConfiguredWallets() {
	cold, err := xrpl.GenerateWallet()
	assert.Nil(s.T(), err)
	s.config.Token.ColdWalletSeed = cold.Seed
	s.ledger.existing = map[string]bool{cold.GetAddress().String(): true}
	s.ledger.balances["FLT"] = "0"

	result, err := s.service.Provision(s.ctx)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), cold.GetAddress().String(), result.ColdWallet.Address)

	// Only the generated hot wallet needed faucet funding
	assert.Equal(s.T(), 1, s.ledger.funded)
}

func (s *ServiceTestSuite) TestTrustLine() {
	tx, err := s.service.TrustLine(s.ctx, s.seed, "rIssuer", "FLT", "1000000000")
	assert.Nil(s.T(), err)
	assert.NotNil(s.T(), tx)
	assert.Equal(s.T(), 1, s.ledger.trustLines)
}

// ---- Stub ----

type stubLedger struct {
	lines    map[string][]xrpl.AccountLine
	linesErr error
	balances map[string]string

	// Accounts known to the ledger, faucet funded ones are added
	existing map[string]bool

	funded        int
	issuerConfigs int
	trustLines    int
	payments      int

	lastPaymentDestination string
	lastPaymentValue       string
	lastPaymentIssuer      string
}

func (self *stubLedger) AccountExists(ctx context.Context, address string) (bool, error) {
	return self.existing[address], nil
}

func (self *stubLedger) FundWallet(ctx context.Context, address string) (*xrpl.FaucetResponse, error) {
	self.funded++
	if self.existing == nil {
		self.existing = make(map[string]bool)
	}
	self.existing[address] = true
	return &xrpl.FaucetResponse{}, nil
}

func (self *stubLedger) ConfigureIssuer(ctx context.Context, w *wallet.Wallet, domainHex string, tickSize uint8) (*xrpl.TxResult, error) {
	self.issuerConfigs++
	return &xrpl.TxResult{Validated: true, EngineResult: "tesSUCCESS"}, nil
}

func (self *stubLedger) SetTrustLine(ctx context.Context, w *wallet.Wallet, issuer, currency, limit string) (*xrpl.TxResult, error) {
	self.trustLines++
	return &xrpl.TxResult{Validated: true, EngineResult: "tesSUCCESS"}, nil
}

func (self *stubLedger) SendTokens(ctx context.Context, w *wallet.Wallet, destination, currency, value, issuer string) (*xrpl.TxResult, error) {
	self.payments++
	self.lastPaymentDestination = destination
	self.lastPaymentValue = value
	self.lastPaymentIssuer = issuer
	return &xrpl.TxResult{Validated: true, EngineResult: "tesSUCCESS"}, nil
}

func (self *stubLedger) LineBalance(ctx context.Context, address, currency, issuer string) (string, error) {
	return self.balances[currency], nil
}

func (self *stubLedger) AccountLines(ctx context.Context, address, peer string) ([]xrpl.AccountLine, error) {
	if self.linesErr != nil {
		return nil, self.linesErr
	}
	return self.lines[address], nil
}
