package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flashfund/server/internal/domain"
)

func (a *App) FeesWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	amount, err := a.Engine.WithdrawFees(r.Context(), caller)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"amount": amount.String()})
}

type feeUpdateRequest struct {
	Bps int64 `json:"bps"`
}

func (a *App) FeesUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	var req feeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Engine.UpdateFeePercent(r.Context(), caller, req.Bps); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"fee_bps": req.Bps})
}

func (a *App) Pause(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	if err := a.Engine.Pause(r.Context(), caller); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"paused": true})
}

func (a *App) Unpause(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	if err := a.Engine.Unpause(r.Context(), caller); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"paused": false})
}

type ownerTransferRequest struct {
	NewOwner string `json:"new_owner"`
}

func (a *App) OwnerTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	var req ownerTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Engine.TransferOwnership(r.Context(), caller, req.NewOwner); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"owner": req.NewOwner})
}

func (a *App) LedgerState(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"total_campaigns":  a.Engine.TotalCampaigns(),
		"fee_bps":          a.Engine.FeePercent(),
		"accumulated_fees": a.Engine.AccumulatedFees().String(),
		"contract_balance": a.Engine.ContractBalance().String(),
		"paused":           a.Engine.Paused(),
		"owner":            a.Engine.Owner(),
	})
}

// DirectTransfer rejects unsolicited value pushed at the ledger; funds only
// enter through donate.
func (a *App) DirectTransfer(w http.ResponseWriter, r *http.Request) {
	a.fail(w, domain.ErrDirectTransfer)
}

// InvalidCall rejects unrecognized operations.
func (a *App) InvalidCall(w http.ResponseWriter, r *http.Request) {
	a.fail(w, domain.ErrInvalidCall)
}
