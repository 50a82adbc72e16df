package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/wallet-connect/internal/client"
	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/orchestrator"

	"go.uber.org/zap"
)

// WalletHandler exposes the wallet connection flow over HTTP
type WalletHandler struct {
	orch     *orchestrator.Orchestrator
	balances *client.Balances
	log      *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(orch *orchestrator.Orchestrator, balances *client.Balances, log *zap.Logger) *WalletHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{orch: orch, balances: balances, log: log.Named("http")}
}

// List handles GET /wallet/list
// @Summary      List wallets
// @Description  Lists wallet tiles: installed wallets, named connectors and download links
// @Tags         wallet
// @Produce      json
// @Success      200  {array}   model.WalletDetail
// @Router       /wallet/list [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Wallets())
}

// Session handles GET /wallet/session
// @Summary      Get session
// @Description  Returns the persisted wallet session and onboarding status
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/session [get]
func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.sessionResponse())
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Runs one connection attempt for the selected wallet tile
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  true  "Selected wallet"
// @Success      200      {object}  model.ConnectResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ConnectResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ConnectorType == "" {
		writeError(w, http.StatusBadRequest, errors.New("connectorType is required"))
		return
	}

	out := h.orch.Select(r.Context(), h.resolve(req))
	h.writeOutcome(w, out)
}

// Derive handles POST /wallet/derive
// @Summary      Create local wallet
// @Description  Signs the onboarding message with the connected EVM wallet and derives the local wallet. Solana wallets skip this step
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      422  {object}  model.ConnectResponse
// @Router       /wallet/derive [post]
func (h *WalletHandler) Derive(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	h.writeOutcome(w, h.orch.Derive(r.Context()))
}

// Reconnect handles POST /wallet/reconnect
// @Summary      Reconnect wallet
// @Description  Restores the persisted wallet connection without prompting
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/reconnect [post]
func (h *WalletHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if err := h.orch.Reconnect(r.Context()); err != nil {
		h.log.Warn("reconnect failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionResponse())
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Clears the source account and local wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if err := h.orch.Disconnect(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionResponse())
}

// SignatureInput handles GET /wallet/signature-input
// @Summary      Get signature input
// @Description  Returns the credential of a connected Cosmos wallet in the shape backend mutations consume
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SignatureInput
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/signature-input [get]
func (h *WalletHandler) SignatureInput(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	in, ok := h.orch.Session().SignatureInput()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no cosmos credential"))
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// Balance handles GET /wallet/balance
// @Summary      Get source account balance
// @Description  Gets the native balance of the connected EVM or Solana wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	balance, err := h.balances.Balance(r.Context(), h.orch.Session().SourceAccount)
	switch {
	case errors.Is(err, client.ErrNoAccount):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, client.ErrUnsupportedChain):
		writeError(w, http.StatusBadRequest, err)
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
	default:
		writeJSON(w, http.StatusOK, balance)
	}
}

// resolve maps the request to a listed tile so name, icon and download link come from the list.
func (h *WalletHandler) resolve(req model.ConnectRequest) model.WalletDetail {
	for _, d := range h.orch.Wallets() {
		if d.ConnectorType == req.ConnectorType && (req.RDNS == "" || d.RDNS == req.RDNS) {
			return d
		}
	}
	return model.WalletDetail{ConnectorType: req.ConnectorType, Name: req.Name, RDNS: req.RDNS}
}

func (h *WalletHandler) writeOutcome(w http.ResponseWriter, out orchestrator.Outcome) {
	resp := model.ConnectResponse{
		State:            out.State.String(),
		OnboardingStatus: h.orch.OnboardingStatus(),
		Address:          model.Deref(h.orch.Session().SourceAccount.Address),
		Error:            out.Error,
		DownloadLink:     out.DownloadLink,
	}
	if out.Error != "" {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) sessionResponse() model.SessionResponse {
	return model.SessionResponse{
		OnboardingStatus: h.orch.OnboardingStatus(),
		Session:          h.orch.Session(),
	}
}
