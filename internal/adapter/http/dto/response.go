package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/studentledger/internal/domain"
)

// TransactionResponse represents a ledger record in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Allocation  string          `json:"allocation"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain record to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format(domain.DateLayout),
		Type:        string(t.Kind),
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Allocation:  t.AllocationLabel(),
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain records to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransactionListResponse wraps a list of records.
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
}

// ChartSeries is one pie chart: parallel label and value arrays.
type ChartSeries struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// SummaryResponse is the dashboard payload.
type SummaryResponse struct {
	TotalTuitionCost  decimal.Decimal `json:"total_tuition_cost"`
	TuitionAidApplied decimal.Decimal `json:"tuition_aid_applied"`
	TuitionRemaining  decimal.Decimal `json:"tuition_remaining"`
	GeneralIncome     decimal.Decimal `json:"general_income"`
	GeneralExpenses   decimal.Decimal `json:"general_expenses"`
	GeneralBalance    decimal.Decimal `json:"general_balance"`
	IncomeChart       ChartSeries     `json:"income_chart"`
	ExpenseChart      ChartSeries     `json:"expense_chart"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.Summary) *SummaryResponse {
	chart := s.Chart()
	return &SummaryResponse{
		TotalTuitionCost:  s.TotalTuitionCost,
		TuitionAidApplied: s.TuitionAidApplied,
		TuitionRemaining:  s.TuitionRemaining,
		GeneralIncome:     s.GeneralIncome,
		GeneralExpenses:   s.GeneralExpenses,
		GeneralBalance:    s.GeneralBalance,
		IncomeChart:       newChartSeries(chart.IncomeLabels, chart.IncomeValues),
		ExpenseChart:      newChartSeries(chart.ExpenseLabels, chart.ExpenseValues),
	}
}

func newChartSeries(labels []string, values []decimal.Decimal) ChartSeries {
	if labels == nil {
		labels = []string{}
	}
	if values == nil {
		values = []decimal.Decimal{}
	}
	return ChartSeries{Labels: labels, Values: values}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries an issued token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
