package models

// Transaction is a single buy or sell record of the ledger.
//
// The JSON field names are the on-disk format and must not change.
// TotalCost is stored, not computed: it is derived from Quantity and
// PricePerShare only when the record is created or replaced.
type Transaction struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	CompanyName    string  `json:"company_name"`
	Asset          string  `json:"asset"`
	Action         Action  `json:"action"`
	Quantity       int64   `json:"quantity"`
	PricePerShare  float64 `json:"price_per_share"`
	TotalCost      float64 `json:"total_cost"`
	Currency       string  `json:"currency"`
	Exchange       string  `json:"exchange"`
	Broker         string  `json:"broker"`
	SettlementDate string  `json:"settlement_date"`
	DealNumber     string  `json:"deal_number"`
}

// Draft is unvalidated input for creating or replacing a Transaction.
// Quantity and PricePerShare are kept as entered so that parsing happens
// in one place, before any record is built.
type Draft struct {
	Date           string `json:"date"`
	CompanyName    string `json:"company_name"`
	Asset          string `json:"asset"`
	Action         string `json:"action"`
	Quantity       string `json:"quantity"`
	PricePerShare  string `json:"price_per_share"`
	Currency       string `json:"currency"`
	Exchange       string `json:"exchange"`
	Broker         string `json:"broker"`
	SettlementDate string `json:"settlement_date"`
	DealNumber     string `json:"deal_number"`
}
