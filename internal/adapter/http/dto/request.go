package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/usecase"
)

// FlexString accepts either a JSON string or a JSON number and keeps the raw
// text. Numbers are not converted to float so decimal precision survives.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

// CreateTransactionRequest represents a request to record income or expense.
type CreateTransactionRequest struct {
	Date           string     `json:"date"`
	Type           string     `json:"type"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Amount         FlexString `json:"amount"`
	TuitionPercent FlexString `json:"tuition_percent"`
}

// ToIntent converts the request to a domain intent.
func (r *CreateTransactionRequest) ToIntent() domain.TransactionIntent {
	return domain.TransactionIntent{
		Date:           r.Date,
		Kind:           r.Type,
		Category:       r.Category,
		Description:    r.Description,
		Amount:         string(r.Amount),
		TuitionPercent: string(r.TuitionPercent),
	}
}

// TuitionTransferRequest represents a request to move funds from general to tuition.
type TuitionTransferRequest struct {
	Amount FlexString `json:"amount"`
	Date   string     `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TuitionTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		Amount: string(r.Amount),
		Date:   r.Date,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}
