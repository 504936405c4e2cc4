package models

// DiscountType selects how a discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// InvoiceStatus is the lifecycle state of an invoice as delivered upstream.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusPending   InvoiceStatus = "PENDING"
	StatusCompleted InvoiceStatus = "COMPLETED"
	StatusOverdue   InvoiceStatus = "OVERDUE"
	StatusCanceled  InvoiceStatus = "CANCELED"
)

// statusLabels maps statuses to the French display labels used in the
// flat report formats.
var statusLabels = map[InvoiceStatus]string{
	StatusDraft:     "Brouillon",
	StatusPending:   "En attente",
	StatusCompleted: "Payée",
	StatusOverdue:   "En retard",
	StatusCanceled:  "Annulée",
}

// Label returns the French display label for the status. Unknown statuses
// pass through verbatim.
func (s InvoiceStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ClientType distinguishes individuals from companies.
type ClientType string

const (
	ClientIndividual ClientType = "INDIVIDUAL"
	ClientCompany    ClientType = "COMPANY"
)

// Address is a client postal address.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// Client is the invoiced party.
type Client struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Siret     string     `json:"siret"`
	VatNumber string     `json:"vatNumber"`
	Type      ClientType `json:"type"`
	Address   Address    `json:"address"`
}

// LineItem is a single invoice line.
type LineItem struct {
	Description  string       `json:"description"`
	Quantity     float64      `json:"quantity"`
	UnitPrice    float64      `json:"unitPrice"`
	VatRate      float64      `json:"vatRate"` // percentage: 20, 10, 5.5, 2.1, 0
	Discount     float64      `json:"discount,omitempty"`
	DiscountType DiscountType `json:"discountType,omitempty"`
}

// NetHT returns the pre-tax line amount after the line's own discount.
func (li LineItem) NetHT() float64 {
	ht := li.Quantity * li.UnitPrice
	switch li.DiscountType {
	case DiscountPercentage:
		ht *= 1 - li.Discount/100
	case DiscountFixed:
		ht -= li.Discount
	}
	return ht
}

// Invoice is an invoice record as delivered by the upstream data layer.
// Dates and amounts keep their wire representation: upstream sources emit
// them inconsistently as Unix seconds, Unix milliseconds, numeric strings,
// ISO strings or native values, so the fields are typed `any` and resolved
// by the export normalizer rather than at decode time.
type Invoice struct {
	// Identification
	Number string `json:"number"`
	Prefix string `json:"prefix,omitempty"`

	// Dates (ambiguous wire representation, see type comment)
	IssueDate any `json:"issueDate,omitempty"`
	DueDate   any `json:"dueDate,omitempty"`
	CreatedAt any `json:"createdAt,omitempty"`

	// Totals (number or numeric string; nil means zero)
	FinalTotalHT   any `json:"finalTotalHT,omitempty"`
	FinalTotalVAT  any `json:"finalTotalVAT,omitempty"`
	FinalTotalTTC  any `json:"finalTotalTTC,omitempty"`
	Discount       any `json:"discount,omitempty"`
	DiscountAmount any `json:"discountAmount,omitempty"`

	DiscountType DiscountType  `json:"discountType,omitempty"`
	Status       InvoiceStatus `json:"status"`

	IsDeposit           bool   `json:"isDeposit,omitempty"`
	StripeInvoiceID     string `json:"stripeInvoiceId,omitempty"`
	PurchaseOrderNumber string `json:"purchaseOrderNumber,omitempty"`

	Client Client     `json:"client"`
	Items  []LineItem `json:"items,omitempty"`
}

// FullNumber returns the human invoice number (prefix + number).
func (inv *Invoice) FullNumber() string {
	return inv.Prefix + inv.Number
}

// HasItems reports whether line items are available for VAT allocation.
func (inv *Invoice) HasItems() bool {
	return len(inv.Items) > 0
}
