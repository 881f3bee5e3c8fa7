package api

import (
	"bytes"
	"encoding/json"

	"investment-ledger-go/internal/models"
)

// text accepts either a JSON string or a JSON number and keeps it as text,
// so that numeric validation stays in the ledger.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

type draftRequest struct {
	Date           string `json:"date"`
	CompanyName    string `json:"company_name"`
	Asset          string `json:"asset"`
	Action         string `json:"action"`
	Quantity       text   `json:"quantity"`
	PricePerShare  text   `json:"price_per_share"`
	Currency       string `json:"currency"`
	Exchange       string `json:"exchange"`
	Broker         string `json:"broker"`
	SettlementDate string `json:"settlement_date"`
	DealNumber     string `json:"deal_number"`
}

func (r draftRequest) draft() models.Draft {
	return models.Draft{
		Date:           r.Date,
		CompanyName:    r.CompanyName,
		Asset:          r.Asset,
		Action:         r.Action,
		Quantity:       string(r.Quantity),
		PricePerShare:  string(r.PricePerShare),
		Currency:       r.Currency,
		Exchange:       r.Exchange,
		Broker:         r.Broker,
		SettlementDate: r.SettlementDate,
		DealNumber:     r.DealNumber,
	}
}
