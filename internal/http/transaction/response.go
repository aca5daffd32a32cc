package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

// Response is the JSON form of a transaction.
type Response struct {
	ID                  int64              `json:"id"`
	Date                render.Date        `json:"date"`
	CategoryID          int64              `json:"category_id"`
	CategoryName        string             `json:"category_name,omitempty"`
	AccountID           int64              `json:"account_id"`
	AccountName         string             `json:"account_name,omitempty"`
	Amount              decimal.Decimal    `json:"amount"`
	Currency            money.Currency     `json:"currency"`
	ExchangeRate        *decimal.Decimal   `json:"exchange_rate"`
	AmountInBase        decimal.Decimal    `json:"amount_in_base"`
	Kind                transaction.Kind   `json:"kind"`
	Status              transaction.Status `json:"status"`
	Flavor              transaction.Flavor `json:"flavor"`
	TransferGroup       *uuid.UUID         `json:"transfer_group,omitempty"`
	PairedTransactionID *int64             `json:"paired_transaction_id,omitempty"`
	LoanID              *int64             `json:"loan_id,omitempty"`
	Description         string             `json:"description"`
	Notes               string             `json:"notes,omitempty"`
	Warnings            []string           `json:"warnings,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

func ToResponse(tx *transaction.Transaction) Response {
	return Response{
		ID:                  tx.ID,
		Date:                render.DateOf(tx.Date),
		CategoryID:          tx.CategoryID,
		CategoryName:        tx.CategoryName,
		AccountID:           tx.AccountID,
		AccountName:         tx.AccountName,
		Amount:              tx.Amount,
		Currency:            tx.Currency,
		ExchangeRate:        tx.ExchangeRate,
		AmountInBase:        tx.AmountInBase,
		Kind:                tx.Kind,
		Status:              tx.Status,
		Flavor:              tx.Flavor,
		TransferGroup:       tx.TransferGroup,
		PairedTransactionID: tx.PairedTransactionID,
		LoanID:              tx.LoanID,
		Description:         tx.Description,
		Notes:               tx.Notes,
		Warnings:            tx.Warnings,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}

type summaryResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

type transferResponse struct {
	Group       uuid.UUID       `json:"transfer_group"`
	Date        render.Date     `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	From        Response        `json:"from"`
	To          Response        `json:"to"`
}

func toTransferResponse(t *transaction.Transfer) transferResponse {
	return transferResponse{
		Group:       t.Group,
		Date:        render.DateOf(t.Date),
		Amount:      t.Amount,
		Description: t.Description,
		From:        ToResponse(t.From),
		To:          ToResponse(t.To),
	}
}

func toTransferList(ts []*transaction.Transfer) []transferResponse {
	resp := make([]transferResponse, len(ts))
	for i, t := range ts {
		resp[i] = toTransferResponse(t)
	}

	return resp
}
