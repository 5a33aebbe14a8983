package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StartTimestamp           *prometheus.Desc
	UpForSeconds             *prometheus.Desc
	RequestsCreated          *prometheus.Desc
	RequestsApproved         *prometheus.Desc
	RequestsRejected         *prometheus.Desc
	AverageRequestsPerMinute *prometheus.Desc
	NFTsMinted               *prometheus.Desc
	SellOffersCreated        *prometheus.Desc
	TrustLinesSet            *prometheus.Desc
	TokenPayments            *prometheus.Desc
	FilesPinned              *prometheus.Desc
	DocumentsPinned          *prometheus.Desc
	SignInPayloadsCreated    *prometheus.Desc
	OfferPayloadsCreated     *prometheus.Desc

	DbErrors      *prometheus.Desc
	UploadErrors  *prometheus.Desc
	SubmitErrors  *prometheus.Desc
	QueryErrors   *prometheus.Desc
	TxExpired     *prometheus.Desc
	SigningErrors *prometheus.Desc
	PinErrors     *prometheus.Desc
	FetchErrors   *prometheus.Desc
	PayloadErrors *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "forestledger",
	}

	return &Collector{
		StartTimestamp:           prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:             prometheus.NewDesc("up_for_seconds", "", nil, labels),
		RequestsCreated:          prometheus.NewDesc("requests_created", "", nil, labels),
		RequestsApproved:         prometheus.NewDesc("requests_approved", "", nil, labels),
		RequestsRejected:         prometheus.NewDesc("requests_rejected", "", nil, labels),
		AverageRequestsPerMinute: prometheus.NewDesc("average_requests_per_minute", "", nil, labels),
		NFTsMinted:               prometheus.NewDesc("nfts_minted", "", nil, labels),
		SellOffersCreated:        prometheus.NewDesc("sell_offers_created", "", nil, labels),
		TrustLinesSet:            prometheus.NewDesc("trust_lines_set", "", nil, labels),
		TokenPayments:            prometheus.NewDesc("token_payments", "", nil, labels),
		FilesPinned:              prometheus.NewDesc("files_pinned", "", nil, labels),
		DocumentsPinned:          prometheus.NewDesc("documents_pinned", "", nil, labels),
		SignInPayloadsCreated:    prometheus.NewDesc("sign_in_payloads_created", "", nil, labels),
		OfferPayloadsCreated:     prometheus.NewDesc("offer_payloads_created", "", nil, labels),

		// Errors
		DbErrors:      prometheus.NewDesc("error_db", "", nil, labels),
		UploadErrors:  prometheus.NewDesc("error_upload", "", nil, labels),
		SubmitErrors:  prometheus.NewDesc("error_submit", "", nil, labels),
		QueryErrors:   prometheus.NewDesc("error_query", "", nil, labels),
		TxExpired:     prometheus.NewDesc("error_tx_expired", "", nil, labels),
		SigningErrors: prometheus.NewDesc("error_signing", "", nil, labels),
		PinErrors:     prometheus.NewDesc("error_pin", "", nil, labels),
		FetchErrors:   prometheus.NewDesc("error_fetch", "", nil, labels),
		PayloadErrors: prometheus.NewDesc("error_payload", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds
	ch <- self.RequestsCreated
	ch <- self.RequestsApproved
	ch <- self.RequestsRejected
	ch <- self.AverageRequestsPerMinute
	ch <- self.NFTsMinted
	ch <- self.SellOffersCreated
	ch <- self.TrustLinesSet
	ch <- self.TokenPayments
	ch <- self.FilesPinned
	ch <- self.DocumentsPinned
	ch <- self.SignInPayloadsCreated
	ch <- self.OfferPayloadsCreated

	// Errors
	ch <- self.DbErrors
	ch <- self.UploadErrors
	ch <- self.SubmitErrors
	ch <- self.QueryErrors
	ch <- self.TxExpired
	ch <- self.SigningErrors
	ch <- self.PinErrors
	ch <- self.FetchErrors
	ch <- self.PayloadErrors
}

// Collect implements required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))
	ch <- prometheus.MustNewConstMetric(self.RequestsCreated, prometheus.CounterValue, float64(self.monitor.Report.Requests.State.RequestsCreated.Load()))
	ch <- prometheus.MustNewConstMetric(self.RequestsApproved, prometheus.CounterValue, float64(self.monitor.Report.Requests.State.RequestsApproved.Load()))
	ch <- prometheus.MustNewConstMetric(self.RequestsRejected, prometheus.CounterValue, float64(self.monitor.Report.Requests.State.RequestsRejected.Load()))
	ch <- prometheus.MustNewConstMetric(self.AverageRequestsPerMinute, prometheus.GaugeValue, self.monitor.Report.Requests.State.AverageRequestsPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.NFTsMinted, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.NFTsMinted.Load()))
	ch <- prometheus.MustNewConstMetric(self.SellOffersCreated, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.SellOffersCreated.Load()))
	ch <- prometheus.MustNewConstMetric(self.TrustLinesSet, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.TrustLinesSet.Load()))
	ch <- prometheus.MustNewConstMetric(self.TokenPayments, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.TokenPayments.Load()))
	ch <- prometheus.MustNewConstMetric(self.FilesPinned, prometheus.CounterValue, float64(self.monitor.Report.Pinning.State.FilesPinned.Load()))
	ch <- prometheus.MustNewConstMetric(self.DocumentsPinned, prometheus.CounterValue, float64(self.monitor.Report.Pinning.State.DocumentsPinned.Load()))
	ch <- prometheus.MustNewConstMetric(self.SignInPayloadsCreated, prometheus.CounterValue, float64(self.monitor.Report.Xumm.State.SignInPayloadsCreated.Load()))
	ch <- prometheus.MustNewConstMetric(self.OfferPayloadsCreated, prometheus.CounterValue, float64(self.monitor.Report.Xumm.State.OfferPayloadsCreated.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.DbErrors, prometheus.CounterValue, float64(self.monitor.Report.Requests.Errors.DbError.Load()))
	ch <- prometheus.MustNewConstMetric(self.UploadErrors, prometheus.CounterValue, float64(self.monitor.Report.Requests.Errors.UploadError.Load()))
	ch <- prometheus.MustNewConstMetric(self.SubmitErrors, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.SubmitError.Load()))
	ch <- prometheus.MustNewConstMetric(self.QueryErrors, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.QueryError.Load()))
	ch <- prometheus.MustNewConstMetric(self.TxExpired, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.TxExpired.Load()))
	ch <- prometheus.MustNewConstMetric(self.SigningErrors, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.SigningError.Load()))
	ch <- prometheus.MustNewConstMetric(self.PinErrors, prometheus.CounterValue, float64(self.monitor.Report.Pinning.Errors.PinError.Load()))
	ch <- prometheus.MustNewConstMetric(self.FetchErrors, prometheus.CounterValue, float64(self.monitor.Report.Pinning.Errors.FetchError.Load()))
	ch <- prometheus.MustNewConstMetric(self.PayloadErrors, prometheus.CounterValue, float64(self.monitor.Report.Xumm.Errors.PayloadError.Load()))
}
