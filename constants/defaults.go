package constants

// Defaults applied when an extracted field is absent.
const (
	DefaultVendorName      = "Unknown Vendor"
	DefaultCustomerName    = "Unknown Customer"
	DefaultCurrency        = "EUR"
	DefaultLineDescription = "No description"
)

// Party roles, also used as the prefix of synthetic party identifiers.
const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// InvoiceNumberPrefix prefixes synthesized invoice numbers.
const InvoiceNumberPrefix = "INV"
