package report

type Report struct {
	Run      *RunReport      `json:"run,omitempty"`
	Requests *RequestsReport `json:"requests,omitempty"`
	Ledger   *LedgerReport   `json:"ledger,omitempty"`
	Pinning  *PinningReport  `json:"pinning,omitempty"`
	Xumm     *XummReport     `json:"xumm,omitempty"`
}

func NewReport() *Report {
	return &Report{
		Run:      &RunReport{},
		Requests: &RequestsReport{},
		Ledger:   &LedgerReport{},
		Pinning:  &PinningReport{},
		Xumm:     &XummReport{},
	}
}
