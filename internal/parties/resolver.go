// Package parties resolves the vendor and customer of each document to one stored row per
// identifier for the duration of a run.
package parties

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
	"github.com/joseph-ayodele/invoice-ledger/internal/normalize"
	"github.com/joseph-ayodele/invoice-ledger/internal/utils"
)

// Store is the subset of the entity store the resolver writes to.
type Store interface {
	CreateVendor(ctx context.Context, v *entity.Vendor) (uuid.UUID, error)
	CreateCustomer(ctx context.Context, c *entity.Customer) (uuid.UUID, error)
}

// Resolver owns the identifier maps of one run. It is not safe for concurrent use;
// create a new Resolver for every run.
type Resolver struct {
	store     Store
	logger    *slog.Logger
	vendors   map[string]uuid.UUID
	customers map[string]uuid.UUID
}

// NewResolver returns a Resolver with empty identifier maps.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:     store,
		logger:    logger,
		vendors:   make(map[string]uuid.UUID),
		customers: make(map[string]uuid.UUID),
	}
}

// Identifier picks the dedup key for a party: tax id, then email, then name, then
// "<role>-<docIndex>" so that parties with no identifying data are never merged.
func Identifier(role string, docIndex int, taxID, email, name string) string {
	if id := utils.FirstNonEmpty(taxID, email, name); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", role, docIndex)
}

// ResolveVendor returns the vendor id for a document, creating the vendor on first sight of
// its identifier. created reports whether a row was written.
func (r *Resolver) ResolveVendor(ctx context.Context, docIndex int, vb extract.VendorBlock, pb extract.PaymentBlock) (id uuid.UUID, created bool, err error) {
	name := extract.Unwrap(vb.VendorName, "")
	taxID := extract.Unwrap(vb.VendorTaxID, "")
	email := extract.Unwrap(vb.VendorEmail, "")
	key := Identifier(constants.RoleVendor, docIndex, taxID, email, name)

	if id, ok := r.vendors[key]; ok {
		r.logger.Debug("parties.vendor.reused", "identifier", key, "vendor_id", id)
		return id, false, nil
	}

	rawAddr := extract.Unwrap(vb.VendorAddress, "")
	addr := normalize.ParseAddress(rawAddr)
	v := &entity.Vendor{
		Name:              nameOr(name, constants.DefaultVendorName),
		PartyNumber:       utils.NilIfEmpty(extract.Unwrap(vb.VendorPartyNumber, "")),
		TaxID:             utils.NilIfEmpty(taxID),
		Email:             utils.NilIfEmpty(email),
		Phone:             utils.NilIfEmpty(extract.Unwrap(vb.VendorPhone, "")),
		Address:           utils.NilIfEmpty(utils.FirstNonEmpty(addr.Address, rawAddr)),
		City:              utils.NilIfEmpty(addr.City),
		State:             utils.NilIfEmpty(addr.State),
		Country:           utils.NilIfEmpty(addr.Country),
		PostalCode:        utils.NilIfEmpty(addr.PostalCode),
		BankAccountNumber: utils.NilIfEmpty(extract.Unwrap(pb.BankAccountNumber, "")),
		BIC:               utils.NilIfEmpty(extract.Unwrap(pb.BIC, "")),
		AccountName:       utils.NilIfEmpty(extract.Unwrap(pb.AccountName, "")),
	}
	id, err = r.store.CreateVendor(ctx, v)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("create vendor %q: %w", v.Name, err)
	}
	r.vendors[key] = id
	r.logger.Debug("parties.vendor.created", "identifier", key, "vendor_id", id, "name", v.Name)
	return id, true, nil
}

// ResolveCustomer is ResolveVendor for the customer block.
func (r *Resolver) ResolveCustomer(ctx context.Context, docIndex int, cb extract.CustomerBlock) (id uuid.UUID, created bool, err error) {
	name := extract.Unwrap(cb.CustomerName, "")
	taxID := extract.Unwrap(cb.CustomerTaxID, "")
	email := extract.Unwrap(cb.CustomerEmail, "")
	key := Identifier(constants.RoleCustomer, docIndex, taxID, email, name)

	if id, ok := r.customers[key]; ok {
		r.logger.Debug("parties.customer.reused", "identifier", key, "customer_id", id)
		return id, false, nil
	}

	rawAddr := extract.Unwrap(cb.CustomerAddress, "")
	addr := normalize.ParseAddress(rawAddr)
	c := &entity.Customer{
		Name:       nameOr(name, constants.DefaultCustomerName),
		TaxID:      utils.NilIfEmpty(taxID),
		Email:      utils.NilIfEmpty(email),
		Phone:      utils.NilIfEmpty(extract.Unwrap(cb.CustomerPhone, "")),
		Address:    utils.NilIfEmpty(utils.FirstNonEmpty(addr.Address, rawAddr)),
		City:       utils.NilIfEmpty(addr.City),
		State:      utils.NilIfEmpty(addr.State),
		Country:    utils.NilIfEmpty(addr.Country),
		PostalCode: utils.NilIfEmpty(addr.PostalCode),
	}
	id, err = r.store.CreateCustomer(ctx, c)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("create customer %q: %w", c.Name, err)
	}
	r.customers[key] = id
	r.logger.Debug("parties.customer.created", "identifier", key, "customer_id", id, "name", c.Name)
	return id, true, nil
}

func nameOr(name, def string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return def
}
