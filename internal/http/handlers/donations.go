package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flashfund/server/internal/domain"
)

type donationRequest struct {
	Amount string `json:"amount"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		a.fail(w, err)
		return
	}
	c, err := a.Engine.Donate(r.Context(), caller, id, amount)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"campaign_id":   id,
		"donor":         caller,
		"amount":        amount.String(),
		"raised_amount": c.RaisedAmount.String(),
	})
}

func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	account := chi.URLParam(r, "account")
	amount := a.Engine.GetDonation(id, account)
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"account":     account,
		"amount":      amount.String(),
	})
}

func (a *App) RefundsCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	amount, err := a.Engine.ClaimRefund(r.Context(), caller, id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"account":     caller,
		"amount":      amount.String(),
	})
}
