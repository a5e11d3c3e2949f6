package httpapi

import (
	"encoding/json"
	"net/http"

	"jobsearch-engine/internal/secrets"
)

type SecretsHandler struct{}

type setKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetSerpAPIKey(w http.ResponseWriter, r *http.Request) {
	h.setKey(w, r, secrets.ProviderSerpAPI)
}

func (h SecretsHandler) SetRapidAPIKey(w http.ResponseWriter, r *http.Request) {
	h.setKey(w, r, secrets.ProviderRapidAPI)
}

func (h SecretsHandler) setKey(w http.ResponseWriter, r *http.Request, provider string) {
	var req setKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}
	if err := secrets.SetAPIKey(provider, req.Key); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
