package http

import (
	"net/http"

	"github.com/atinyakov/tranum/internal/currency"
)

// ConversionResponse is returned by Convert.
type ConversionResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
}

// Convert handles GET /api/currency/convert?amount=&from=&to=.
func Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	amount, err := currency.ParseAmount(q.Get("amount"))
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := currency.Convert(amount, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConversionResponse{Amount: amount, From: from, To: to, Converted: v})
}
