package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
)

func (h *Handler) createVault(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVaultRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	var err error
	if req.Signer, err = signer(r); err != nil {
		h.writeError(w, r, err)
		return
	}

	vault, err := h.services.VaultService.CreateVault(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.createVault").
		Stringer("vault", vault.Address).
		Msg("vault created")
	utils.WriteJSON(w, vault, http.StatusCreated)
}

func (h *Handler) createReceiptToken(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReceiptTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := bindVaultID(r, &req.VaultID); err != nil {
		h.writeError(w, r, err)
		return
	}

	var err error
	if req.Signer, err = signer(r); err != nil {
		h.writeError(w, r, err)
		return
	}

	mint, err := h.services.VaultService.CreateReceiptToken(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, mint, http.StatusCreated)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	var req models.DepositRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := bindVaultID(r, &req.VaultID); err != nil {
		h.writeError(w, r, err)
		return
	}

	var err error
	if req.Signer, err = signer(r); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.VaultService.Deposit(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	var req models.WithdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := bindVaultID(r, &req.VaultID); err != nil {
		h.writeError(w, r, err)
		return
	}

	var err error
	if req.Signer, err = signer(r); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.VaultService.Withdraw(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) getVault(w http.ResponseWriter, r *http.Request) {
	vaultID, err := pathKey(r, "vaultID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.services.VaultService.GetVault(r.Context(), vaultID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	vaultID, err := pathKey(r, "vaultID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	owner, err := pathKey(r, "owner")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	balance, err := h.services.VaultService.Balance(r.Context(), vaultID, owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, balance, http.StatusOK)
}

// position reports the vault holding at ?venue= for ?asset=. Both default
// to what the vault is pinned to.
func (h *Handler) position(w http.ResponseWriter, r *http.Request) {
	vaultID, err := pathKey(r, "vaultID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	asset, err := queryKey(r, "asset")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	position, err := h.services.VaultService.Position(r.Context(), vaultID, r.URL.Query().Get("venue"), asset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, position, http.StatusOK)
}
