package xumm

import (
	"context"
	"fmt"

	"github.com/forestledger/backend/src/utils/config"
	"github.com/forestledger/backend/src/utils/logger"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Client for the XUMM platform API.
// It is a stateless proxy, payloads live entirely on the remote service
// and are resolved by the user on a mobile device.
type Client struct {
	client *resty.Client
	config *config.Xumm
	log    *logrus.Entry
}

func NewClient(config *config.Xumm) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("xumm-client")

	self.client = resty.New().
		SetBaseURL(config.Url).
		SetTimeout(config.RequestTimeout).
		SetHeader("X-API-Key", config.ApiKey).
		SetHeader("X-API-Secret", config.ApiSecret).
		SetHeader("Content-Type", "application/json").
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.IsSuccess() {
				return nil
			}
			return fmt.Errorf("unexpected status: %s: %s", resp.Status(), resp.String())
		})

	return
}

func (self *Client) createPayload(ctx context.Context, txJson TxJson) (out *Payload, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(&CreatePayloadRequest{TxJson: txJson}).
		SetResult(&Payload{}).
		Post("/payload")
	if err != nil {
		return
	}

	out = resp.Result().(*Payload)
	self.log.WithField("uuid", out.UUID).Debug("Created payload")
	return
}

// Generic "prove you control this account" payload
func (self *Client) CreateSignInPayload(ctx context.Context) (out *Payload, err error) {
	return self.createPayload(ctx, TxJson{
		"TransactionType": "SignIn",
	})
}

// Payload asking the user to accept a directed NFT sell offer.
// The offer is not verified to still exist, an already accepted or
// cancelled offer simply fails in the wallet.
func (self *Client) CreateNFTokenAcceptOfferPayload(ctx context.Context, offerId string) (out *Payload, err error) {
	return self.createPayload(ctx, TxJson{
		"TransactionType":  "NFTokenAcceptOffer",
		"NFTokenSellOffer": offerId,
	})
}

func (self *Client) GetPayload(ctx context.Context, uuid string) (out *PayloadStatus, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetResult(&PayloadStatus{}).
		SetPathParam("uuid", uuid).
		Get("/payload/{uuid}")
	if err != nil {
		return
	}

	out = resp.Result().(*PayloadStatus)
	return
}
