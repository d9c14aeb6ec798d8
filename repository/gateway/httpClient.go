package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/umer212dot/Vehicle-Rental-System/util/httpx"
)

// NewSimulator returns the in-process capture simulation: every charge
// succeeds with a fresh transaction id.
func NewSimulator() Repo { return simulator{} }

type simulator struct{}

func (simulator) Charge(req ChargeReq) (*ChargeResp, error) {
	if req.Amount.IsNegative() {
		return nil, errors.New("gateway: negative amount")
	}
	return &ChargeResp{TransactionID: uuid.NewString(), Status: "Completed"}, nil
}

type httpRepo struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewHTTP(apiKey, baseURL string) Repo {
	return &httpRepo{apiKey: apiKey, baseURL: baseURL, client: httpx.Client()}
}

func (r *httpRepo) Charge(req ChargeReq) (*ChargeResp, error) {
	body := map[string]any{
		"external_id": req.ExternalID,
		"amount":      req.Amount,
		"description": req.Description,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequest(http.MethodPost, r.baseURL+"/charges", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway charge failed: %s", resp.Status)
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("gateway: empty transaction id")
	}
	return &ChargeResp{TransactionID: out.ID, Status: out.Status}, nil
}
