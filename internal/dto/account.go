package dto

import (
	"time"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH BANK MOBILE_PROVIDER"`
	OpeningBalance decimal.Decimal    `json:"openingBalance" binding:"omitempty,gte=0"`
	IsDefault      bool               `json:"isDefault"`
}

// UpdateAccountRequest defines the fields allowed for updating an account.
// Pointers distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// TransferRequest moves money between two accounts of the same tenant.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	Name             string             `json:"name"`
	AccountType      domain.AccountType `json:"accountType"`
	OpeningBalance   decimal.Decimal    `json:"openingBalance"`
	CurrentBalance   decimal.Decimal    `json:"currentBalance"`
	FormattedBalance string             `json:"formattedBalance"`
	IsActive         bool               `json:"isActive"`
	IsDefault        bool               `json:"isDefault"`
	DeletedAt        *time.Time         `json:"deletedAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy    string             `json:"lastUpdatedBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Name:             acc.Name,
		AccountType:      acc.AccountType,
		OpeningBalance:   acc.OpeningBalance,
		CurrentBalance:   acc.CurrentBalance,
		FormattedBalance: acc.FormattedBalance(),
		IsActive:         acc.IsActive,
		IsDefault:        acc.IsDefault,
		DeletedAt:        acc.DeletedAt,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountsResponse converts a slice of domain accounts to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
