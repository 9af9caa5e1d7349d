package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flashfund/server/internal/domain"
	"github.com/flashfund/server/internal/ledger"
)

type campaignView struct {
	ID           int64     `json:"id"`
	Creator      string    `json:"creator"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Author       string    `json:"author"`
	GoalAmount   string    `json:"goal_amount"`
	RaisedAmount string    `json:"raised_amount"`
	Deadline     time.Time `json:"deadline"`
	IsActive     bool      `json:"is_active"`
	FundsClaimed bool      `json:"funds_claimed"`
	IsCancelled  bool      `json:"is_cancelled"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
}

func (a *App) campaignView(c domain.Campaign) campaignView {
	return campaignView{
		ID:           c.ID,
		Creator:      c.Creator,
		Title:        c.Title,
		Description:  c.Description,
		Image:        c.Image,
		Author:       c.Author,
		GoalAmount:   c.GoalAmount.String(),
		RaisedAmount: c.RaisedAmount.String(),
		Deadline:     c.Deadline,
		IsActive:     c.IsActive,
		FundsClaimed: c.FundsClaimed,
		IsCancelled:  c.IsCancelled,
		CreatedAt:    c.CreatedAt,
		Status:       string(c.StatusAt(a.Engine.Now())),
	}
}

type createCampaignRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Author       string `json:"author"`
	GoalAmount   string `json:"goal_amount"`
	DurationDays int    `json:"duration_days"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	goal, err := domain.ParseAmount(req.GoalAmount)
	if err != nil {
		a.fail(w, err)
		return
	}
	c, err := a.Engine.CreateCampaign(r.Context(), caller, ledger.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		Author:       req.Author,
		GoalAmount:   goal,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, a.campaignView(c))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns := a.Engine.AllCampaigns()
	items := make([]campaignView, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, a.campaignView(c))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	c, err := a.Engine.GetCampaign(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.campaignView(c))
}

func (a *App) CampaignsCancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	c, err := a.Engine.CancelCampaign(r.Context(), caller, id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.campaignView(c))
}

func (a *App) CampaignsClaim(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	net, err := a.Engine.ClaimFunds(r.Context(), caller, id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": id,
		"net_amount":  net.String(),
	})
}
