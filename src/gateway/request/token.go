package request

type SendTokens struct {
	HotWalletSeed string `json:"hotWalletSeed" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	Currency      string `json:"currency" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Issuer        string `json:"issuer" binding:"required"`
}

type TrustLine struct {
	WalletSeed string `json:"walletSeed" binding:"required"`
	Issuer     string `json:"issuer" binding:"required"`
	Currency   string `json:"currency" binding:"required"`
	Limit      string `json:"limit" binding:"required"`
}
