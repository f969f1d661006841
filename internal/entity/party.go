package entity

import "github.com/google/uuid"

// Address is a structured postal address. Fields are never nil; absent parts are empty strings.
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Vendor represents a vendor for data transfer between layers.
type Vendor struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	PartyNumber       *string   `json:"party_number,omitempty"`
	TaxID             *string   `json:"tax_id,omitempty"`
	Email             *string   `json:"email,omitempty"`
	Phone             *string   `json:"phone,omitempty"`
	Address           *string   `json:"address,omitempty"`
	City              *string   `json:"city,omitempty"`
	State             *string   `json:"state,omitempty"`
	Country           *string   `json:"country,omitempty"`
	PostalCode        *string   `json:"postal_code,omitempty"`
	BankAccountNumber *string   `json:"bank_account_number,omitempty"`
	BIC               *string   `json:"bic,omitempty"`
	AccountName       *string   `json:"account_name,omitempty"`
}

// Customer represents a customer for data transfer between layers.
type Customer struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TaxID      *string   `json:"tax_id,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	City       *string   `json:"city,omitempty"`
	State      *string   `json:"state,omitempty"`
	Country    *string   `json:"country,omitempty"`
	PostalCode *string   `json:"postal_code,omitempty"`
}
