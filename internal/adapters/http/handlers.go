package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"svw.info/birthdayos/internal/collection"
	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/game"
	"svw.info/birthdayos/internal/generator"
	"svw.info/birthdayos/internal/usecase"
)

type Handler struct {
	UC  *usecase.Service
	Hub *Hub
}

func New(uc *usecase.Service, hub *Hub) *Handler { return &Handler{UC: uc, Hub: hub} }

func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/games", h.handleNewGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", h.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", h.handleEndGame).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/reveal", h.handleReveal).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/flag", h.handleFlag).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/restart", h.handleRestart).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/hint", h.handleHint).Methods(http.MethodGet)

	api.HandleFunc("/catalog", h.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/charms", h.handleListCharms).Methods(http.MethodGet)
	api.HandleFunc("/charms", h.handleAddCharm).Methods(http.MethodPost)
	api.HandleFunc("/charms", h.handleClearCharms).Methods(http.MethodDelete)
	api.HandleFunc("/charms/{id}", h.handleRemoveCharm).Methods(http.MethodDelete)
	api.HandleFunc("/charms/{id}/inspect", h.handleInspect).Methods(http.MethodPost)
	api.HandleFunc("/unlock/dismiss", h.handleDismiss).Methods(http.MethodPost)
	api.HandleFunc("/bonus", h.handleBonus).Methods(http.MethodPost)
	api.HandleFunc("/redeem", h.handleRedeem).Methods(http.MethodPost)
	api.HandleFunc("/progress", h.handleProgress).Methods(http.MethodGet)
	api.HandleFunc("/progress", h.handleResetProgress).Methods(http.MethodDelete)
	api.HandleFunc("/progress/{id}", h.handleCompleteMilestone).Methods(http.MethodPost)
	api.HandleFunc("/summary", h.handleSummary).Methods(http.MethodGet)

	if h.Hub != nil {
		api.HandleFunc("/events", h.Hub.ServeWS).Methods(http.MethodGet)
	}
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrGameNotFound), errors.Is(err, usecase.ErrUnknownCharm),
		errors.Is(err, usecase.ErrCharmNotOwned):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrOutOfBounds), errors.Is(err, generator.ErrInvalidSize),
		errors.Is(err, generator.ErrTooManyCandles), errors.Is(err, usecase.ErrInvalidCharm),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, collection.ErrUnknownMilestone):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResp{Error: err.Error()})
}

// decode reads an optional JSON body; an empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badJSON(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
}

func (h *Handler) publish(typ string, data any) {
	if h.Hub != nil {
		h.Hub.Publish(Event{Type: typ, Data: data})
	}
}

// publishSummary pushes the collection view after a store mutation.
func (h *Handler) publishSummary(r *http.Request) {
	if h.Hub == nil {
		return
	}
	if s, err := h.UC.Summary(r.Context()); err == nil {
		h.publish("collection", s)
	}
}

// ---- Games ----

type newGameReq struct {
	Size    int `json:"size,omitempty"`
	Candles int `json:"candles,omitempty"`
}

type cellReq struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	_, snap, err := h.UC.NewGame(r.Context(), req.Size, req.Candles)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.publish("game", snap)
	writeJSON(w, http.StatusCreated, snap)
}

func (h *Handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	snap, err := h.UC.Game(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.EndGame(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	h.cellAction(w, r, h.UC.Reveal)
}

func (h *Handler) handleFlag(w http.ResponseWriter, r *http.Request) {
	h.cellAction(w, r, h.UC.ToggleFlag)
}

func (h *Handler) cellAction(w http.ResponseWriter, r *http.Request,
	act func(ctx context.Context, id string, row, col int) (domain.GameSnapshot, error)) {
	var req cellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	snap, err := act(r.Context(), mux.Vars(r)["id"], req.Row, req.Col)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.publish("game", snap)
	if snap.Status.Terminal() {
		h.publishSummary(r)
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	snap, err := h.UC.Restart(r.Context(), mux.Vars(r)["id"], req.Size, req.Candles)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.publish("game", snap)
	writeJSON(w, http.StatusOK, snap)
}

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	hh, ok, err := h.UC.Hint(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: ok, Hint: hh})
}

// ---- Charms ----

type charmsResp struct {
	Charms      []domain.Charm `json:"charms"`
	TotalPoints float64        `json:"totalPoints"`
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, charmsResp{Charms: usecase.Catalog()})
}

func (h *Handler) handleListCharms(w http.ResponseWriter, r *http.Request) {
	s, err := h.UC.Summary(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charmsResp{Charms: s.Charms, TotalPoints: s.TotalPoints})
}

// addCharmReq either unlocks a catalog charm ("snap a photo") or adds a
// fully specified one.
type addCharmReq struct {
	CatalogID string        `json:"catalogId,omitempty"`
	Charm     *domain.Charm `json:"charm,omitempty"`
}

type addedResp struct {
	Added bool `json:"added"`
}

func (h *Handler) handleAddCharm(w http.ResponseWriter, r *http.Request) {
	var req addCharmReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	var (
		added bool
		err   error
	)
	switch {
	case req.CatalogID != "":
		added, err = h.UC.SnapPhoto(r.Context(), req.CatalogID)
	case req.Charm != nil:
		added, err = h.UC.AddCharm(r.Context(), *req.Charm)
	default:
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "catalogId or charm is required"})
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	h.publishSummary(r)
	writeJSON(w, http.StatusOK, addedResp{Added: added})
}

func (h *Handler) handleRemoveCharm(w http.ResponseWriter, r *http.Request) {
	removed, err := h.UC.RemoveCharm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorResp{Error: "charm not found"})
		return
	}
	h.publishSummary(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearCharms(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.ClearCharms(r.Context()); err != nil {
		writeErr(w, err)
		return
	}
	h.publishSummary(r)
	w.WriteHeader(http.StatusNoContent)
}

type awardedResp struct {
	Awarded bool `json:"awarded"`
}

func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	paid, err := h.UC.InspectCharm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	if paid {
		h.publishSummary(r)
	}
	writeJSON(w, http.StatusOK, awardedResp{Awarded: paid})
}

func (h *Handler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.DismissUnlock(r.Context()); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Bonus / redemption / progress ----

type bonusReq struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func (h *Handler) handleBonus(w http.ResponseWriter, r *http.Request) {
	var req bonusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	if req.Reason == "" {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "reason is required"})
		return
	}
	paid, err := h.UC.AwardBonus(r.Context(), req.Amount, req.Reason)
	if err != nil {
		writeErr(w, err)
		return
	}
	if paid {
		h.publishSummary(r)
	}
	writeJSON(w, http.StatusOK, awardedResp{Awarded: paid})
}

type redeemReq struct {
	Redeemed *bool `json:"redeemed,omitempty"`
}

func (h *Handler) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemReq
	if err := decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	v := true
	if req.Redeemed != nil {
		v = *req.Redeemed
	}
	if err := h.UC.SetRedeemed(r.Context(), v); err != nil {
		writeErr(w, err)
		return
	}
	h.publishSummary(r)
	w.WriteHeader(http.StatusNoContent)
}

type progressResp struct {
	Milestones []domain.Milestone `json:"milestones"`
	Percent    int                `json:"percent"`
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	s, err := h.UC.Summary(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progressResp{Milestones: s.Milestones, Percent: s.ProgressPercent})
}

func (h *Handler) handleCompleteMilestone(w http.ResponseWriter, r *http.Request) {
	id := domain.MilestoneID(mux.Vars(r)["id"])
	if err := h.UC.CompleteMilestone(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	h.publishSummary(r)
	h.handleProgress(w, r)
}

func (h *Handler) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.ResetProgress(r.Context()); err != nil {
		writeErr(w, err)
		return
	}
	h.publishSummary(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.UC.Summary(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
