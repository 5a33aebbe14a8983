package gateway

import (
	"github.com/forestledger/backend/src/nft"
	"github.com/forestledger/backend/src/token"
	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/model"
	"github.com/forestledger/backend/src/utils/monitor"
	"github.com/forestledger/backend/src/utils/pinata"
	"github.com/forestledger/backend/src/utils/task"
	"github.com/forestledger/backend/src/utils/xrpl"
	"github.com/forestledger/backend/src/utils/xumm"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the gateway.
// Wires the database, the upstream clients and the services into the server.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	// The issuer signs every mint and sell offer, there is no point in
	// starting without it
	issuer, err := xrpl.WalletFromSeed(config.Xrpl.IssuerSeed)
	if err != nil {
		return
	}

	db, err := model.NewConnection(self.Ctx, config, "gateway")
	if err != nil {
		return
	}

	monitor := monitor.NewMonitor().
		WithMaxHistorySize(30)

	ledger := xrpl.NewClient(&config.Xrpl)
	pinner := pinata.NewClient(&config.Pinata)
	xummClient := xumm.NewClient(&config.Xumm)

	nftService := nft.NewService(config).
		WithStore(nft.NewStore(db)).
		WithPinner(pinner).
		WithLedger(ledger).
		WithIssuer(&issuer).
		WithMonitor(monitor)

	tokenService := token.NewService(config).
		WithLedger(ledger)

	server := NewServer(config).
		WithMonitor(monitor).
		WithNFTService(nftService).
		WithTokenService(tokenService).
		WithLedger(ledger).
		WithXumm(xummClient).
		WithIssuerAddress(issuer.GetAddress().String())

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(server.Task)

	return
}
