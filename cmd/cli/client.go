package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iho/studentledger/internal/adapter/http/dto"
)

// apiClient talks to the studentledger HTTP API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL, token string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)

		var errResp dto.ErrorResponse
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
			if errResp.Message != "" {
				msg += ": " + errResp.Message
			}
		}
		return nil, &apiError{Status: resp.StatusCode, Message: msg}
	}

	return resp, nil
}

func (c *apiClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) createTransaction(ctx context.Context, req dto.CreateTransactionRequest) ([]*dto.TransactionResponse, error) {
	var out dto.TransactionListResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/transactions", req, &out)
	return out.Transactions, err
}

func (c *apiClient) transfer(ctx context.Context, req dto.TuitionTransferRequest) ([]*dto.TransactionResponse, error) {
	var out dto.TransactionListResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/transfers/tuition", req, &out)
	return out.Transactions, err
}

func (c *apiClient) deleteTransaction(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/transactions/"+id, nil, nil)
}

func (c *apiClient) listTransactions(ctx context.Context) ([]*dto.TransactionResponse, error) {
	var out dto.TransactionListResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/transactions", nil, &out)
	return out.Transactions, err
}

func (c *apiClient) summary(ctx context.Context) (*dto.SummaryResponse, error) {
	var out dto.SummaryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) report(ctx context.Context, w io.Writer) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/report/pdf", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(w, resp.Body)
}
