package xumm

// Transaction template sent to the platform API for out-of-band signing
type TxJson map[string]interface{}

type CreatePayloadRequest struct {
	TxJson TxJson `json:"txjson"`
}

// Freshly created payload. Next.Always is the deep link the user opens in
// the mobile wallet, Refs.QrPng a scannable version of the same link.
type Payload struct {
	UUID string `json:"uuid"`

	Next struct {
		Always string `json:"always"`
	} `json:"next"`

	Refs struct {
		QrPng           string `json:"qr_png"`
		WebsocketStatus string `json:"websocket_status"`
	} `json:"refs"`

	Pushed bool `json:"pushed"`
}

// Resolution state of a payload, polled by the frontend
type PayloadStatus struct {
	Meta struct {
		UUID      string `json:"uuid"`
		Resolved  bool   `json:"resolved"`
		Signed    bool   `json:"signed"`
		Cancelled bool   `json:"cancelled"`
		Expired   bool   `json:"expired"`
	} `json:"meta"`

	Response struct {
		Account string `json:"account"`
		Txid    string `json:"txid"`
	} `json:"response"`
}
