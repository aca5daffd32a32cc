package demo

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var seed []byte

// Dataset is the demo content. Dates are relative to the day it is loaded.
type Dataset struct {
	StartDay       int             `yaml:"start_day"`
	Cycles         int             `yaml:"cycles"`
	Accounts       []Account       `yaml:"accounts"`
	Categories     []Category      `yaml:"categories"`
	Budgets        []Budget        `yaml:"budgets"`
	Loans          []Loan          `yaml:"loans"`
	CreditCards    []CreditCard    `yaml:"credit_cards"`
	Transactions   []Transaction   `yaml:"transactions"`
	LoanPayments   []LoanPayment   `yaml:"loan_payments"`
	QuickTemplates []QuickTemplate `yaml:"quick_templates"`
}

type Account struct {
	Name           string          `yaml:"name"`
	Kind           string          `yaml:"kind"`
	Currency       string          `yaml:"currency"`
	InitialBalance decimal.Decimal `yaml:"initial_balance"`
	Default        bool            `yaml:"default"`
}

type Category struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Subtype string `yaml:"subtype"`
	Icon    string `yaml:"icon"`
	Color   string `yaml:"color"`
}

type Budget struct {
	Category string          `yaml:"category"`
	Amount   decimal.Decimal `yaml:"amount"`
}

type Loan struct {
	Name                 string          `yaml:"name"`
	Entity               string          `yaml:"entity"`
	OriginalAmount       decimal.Decimal `yaml:"original_amount"`
	AnnualRate           decimal.Decimal `yaml:"annual_rate"`
	TotalInstallments    int             `yaml:"total_installments"`
	BaseInstallmentsPaid int             `yaml:"base_installments_paid"`
	PaymentDay           int             `yaml:"payment_day"`
	MonthsAgo            int             `yaml:"months_ago"`
	Currency             string          `yaml:"currency"`
}

type CreditCard struct {
	Name                  string          `yaml:"name"`
	Bank                  string          `yaml:"bank"`
	CardType              string          `yaml:"card_type"`
	LastFour              string          `yaml:"last_four"`
	CreditLimit           decimal.Decimal `yaml:"credit_limit"`
	RevolvingDebt         decimal.Decimal `yaml:"revolving_debt"`
	PaymentDueDay         int             `yaml:"payment_due_day"`
	StatementCloseDay     int             `yaml:"statement_close_day"`
	RevolvingInterestRate decimal.Decimal `yaml:"revolving_interest_rate"`
	Installments          []Installment   `yaml:"installments"`
}

type Installment struct {
	Concept            string          `yaml:"concept"`
	OriginalAmount     decimal.Decimal `yaml:"original_amount"`
	CurrentInstallment int             `yaml:"current_installment"`
	TotalInstallments  int             `yaml:"total_installments"`
	MonthlyPayment     decimal.Decimal `yaml:"monthly_payment"`
	MonthsAgo          int             `yaml:"months_ago"`
}

// Transaction repeats on Day (0-based) of every demo cycle.
type Transaction struct {
	Day          int              `yaml:"day"`
	Category     string           `yaml:"category"`
	Account      string           `yaml:"account"`
	Amount       decimal.Decimal  `yaml:"amount"`
	Description  string           `yaml:"description"`
	ExchangeRate *decimal.Decimal `yaml:"exchange_rate"`
}

// LoanPayment is a monthly installment paid from an account.
type LoanPayment struct {
	Day          int              `yaml:"day"`
	Loan         string           `yaml:"loan"`
	Account      string           `yaml:"account"`
	Description  string           `yaml:"description"`
	ExchangeRate *decimal.Decimal `yaml:"exchange_rate"`
}

type QuickTemplate struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Amount      decimal.Decimal `yaml:"amount"`
	Kind        string          `yaml:"kind"`
	Category    string          `yaml:"category"`
	Account     string          `yaml:"account"`
}

// Parse decodes a dataset, rejecting unknown keys.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("parsing demo dataset: %w", err)
	}

	if ds.Cycles < 1 {
		ds.Cycles = 1
	}

	return &ds, nil
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Parse(seed)
}
