package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/flashfund/server/internal/domain"
	"github.com/flashfund/server/internal/ledger"
	"github.com/flashfund/server/internal/middleware"
)

// App is the handler container wiring the lifecycle engine into the HTTP
// boundary.
type App struct {
	Engine *ledger.Engine
	Log    zerolog.Logger
}

func NewApp(engine *ledger.Engine, log zerolog.Logger) *App {
	return &App{Engine: engine, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, reason, msg string) {
	a.json(w, code, map[string]string{"code": reason, "message": msg})
}

// fail maps a domain error to a stable machine-readable failure response.
func (a *App) fail(w http.ResponseWriter, err error) {
	for _, m := range errorMap {
		if errors.Is(err, m.err) {
			a.error(w, m.status, m.code, err.Error())
			return
		}
	}
	a.Log.Error().Err(err).Msg("unhandled error")
	a.error(w, http.StatusInternalServerError, "internal", "internal error")
}

var errorMap = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidTitle, http.StatusBadRequest, "invalid_title"},
	{domain.ErrInvalidDescription, http.StatusBadRequest, "invalid_description"},
	{domain.ErrInvalidGoal, http.StatusBadRequest, "invalid_goal"},
	{domain.ErrDurationTooShort, http.StatusBadRequest, "duration_too_short"},
	{domain.ErrDurationTooLong, http.StatusBadRequest, "duration_too_long"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domain.ErrAmountOverflow, http.StatusBadRequest, "amount_out_of_range"},
	{domain.ErrInvalidFee, http.StatusBadRequest, "invalid_fee"},
	{domain.ErrInvalidAccount, http.StatusBadRequest, "invalid_account"},
	{domain.ErrDonationTooSmall, http.StatusBadRequest, "donation_too_small"},
	{domain.ErrNotOwner, http.StatusForbidden, "not_owner"},
	{domain.ErrNotCreator, http.StatusForbidden, "not_creator"},
	{domain.ErrNotFound, http.StatusNotFound, "campaign_not_found"},
	{domain.ErrSelfDonation, http.StatusConflict, "self_donation"},
	{domain.ErrCampaignCancelled, http.StatusConflict, "campaign_cancelled"},
	{domain.ErrCampaignExpired, http.StatusConflict, "campaign_expired"},
	{domain.ErrCampaignEnded, http.StatusConflict, "campaign_ended"},
	{domain.ErrAlreadyCancelled, http.StatusConflict, "already_cancelled"},
	{domain.ErrStillRunning, http.StatusConflict, "still_running"},
	{domain.ErrGoalNotReached, http.StatusConflict, "goal_not_reached"},
	{domain.ErrAlreadyClaimed, http.StatusConflict, "already_claimed"},
	{domain.ErrRefundNotAllowed, http.StatusConflict, "refund_not_allowed"},
	{domain.ErrNoDonation, http.StatusConflict, "no_donation"},
	{domain.ErrNothingToWithdraw, http.StatusConflict, "nothing_to_withdraw"},
	{domain.ErrReentrant, http.StatusConflict, "reentrant_call"},
	{domain.ErrNotPaused, http.StatusConflict, "not_paused"},
	{domain.ErrPaused, http.StatusServiceUnavailable, "paused"},
	{domain.ErrTransferFailed, http.StatusBadGateway, "transfer_failed"},
	{domain.ErrDirectTransfer, http.StatusBadRequest, "direct_transfer_rejected"},
	{domain.ErrInvalidCall, http.StatusNotFound, "invalid_call"},
}

// caller returns the authenticated account or writes a 401.
func (a *App) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	account := middleware.AccountFromContext(r.Context())
	if account == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing account context")
		return "", false
	}
	return account, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
