package pinata

// Response of both pinning endpoints
type PinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// URI of the pinned content, resolvable through any IPFS gateway
func (self *PinResponse) URI() string {
	return "ipfs://" + self.IpfsHash
}
