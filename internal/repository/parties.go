package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ledger/db/migrate"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

var vendorColumns = []string{
	"id", "name", "party_number", "tax_id", "email", "phone",
	"address", "city", "state", "country", "postal_code",
	"bank_account_number", "bic", "account_name", "created_at",
}

var customerColumns = []string{
	"id", "name", "tax_id", "email", "phone",
	"address", "city", "state", "country", "postal_code", "created_at",
}

func (s *SQLStore) CreateVendor(ctx context.Context, v *entity.Vendor) (uuid.UUID, error) {
	if err := common.NewValidator().Field("name", v.Name, common.Required).Error(); err != nil {
		return uuid.Nil, err
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := s.insert(ctx, migrate.VendorsTableName, vendorColumns, []any{
		v.ID.String(), v.Name, nullable(v.PartyNumber), nullable(v.TaxID), nullable(v.Email), nullable(v.Phone),
		nullable(v.Address), nullable(v.City), nullable(v.State), nullable(v.Country), nullable(v.PostalCode),
		nullable(v.BankAccountNumber), nullable(v.BIC), nullable(v.AccountName), s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create vendor", "name", v.Name, "error", err)
		return uuid.Nil, err
	}
	return v.ID, nil
}

func (s *SQLStore) CreateCustomer(ctx context.Context, c *entity.Customer) (uuid.UUID, error) {
	if err := common.NewValidator().Field("name", c.Name, common.Required).Error(); err != nil {
		return uuid.Nil, err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := s.insert(ctx, migrate.CustomersTableName, customerColumns, []any{
		c.ID.String(), c.Name, nullable(c.TaxID), nullable(c.Email), nullable(c.Phone),
		nullable(c.Address), nullable(c.City), nullable(c.State), nullable(c.Country), nullable(c.PostalCode),
		s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create customer", "name", c.Name, "error", err)
		return uuid.Nil, err
	}
	return c.ID, nil
}
