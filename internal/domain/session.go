package domain

import "time"

// ProtocolVersion is the UCP protocol version this server speaks.
const ProtocolVersion = "2026-01-11"

type SessionStatus string

const (
	SessionStatusReadyForComplete SessionStatus = "ready_for_complete"
	SessionStatusCompleted        SessionStatus = "completed"
)

// IsTerminal reports whether no further transitions are possible.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted
}

func (s SessionStatus) String() string {
	return string(s)
}

// Item is the product reference embedded in a line item. Title, price and
// image are overwritten by catalog enrichment when the id matches a known
// product; caller-supplied values are kept otherwise. A price of zero means
// "no resolved price".
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Price    int64  `json:"price,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type LineItem struct {
	ID       string  `json:"id,omitempty"`
	Item     Item    `json:"item"`
	Quantity int64   `json:"quantity"`
	Totals   []Total `json:"totals,omitempty"`
	// ParentID links a bundled item to its parent line.
	ParentID string `json:"parent_id,omitempty"`
}

// Total is one entry of a totals breakdown. Amounts are integer minor
// currency units (cents).
type Total struct {
	Type        string `json:"type"`
	DisplayText string `json:"display_text,omitempty"`
	Amount      int64  `json:"amount"`
}

const (
	TotalTypeSubtotal = "subtotal"
	TotalTypeTax      = "tax"
	TotalTypeTotal    = "total"
)

type Buyer struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// PaymentHandler is protocol metadata describing a payment integration.
// The server echoes handlers back; executing them is out of scope.
type PaymentHandler struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Version           string         `json:"version"`
	Spec              string         `json:"spec,omitempty"`
	ConfigSchema      string         `json:"config_schema,omitempty"`
	InstrumentSchemas []string       `json:"instrument_schemas,omitempty"`
	Config            map[string]any `json:"config,omitempty"`
}

type PaymentInstrument struct {
	ID        string         `json:"id"`
	HandlerID string         `json:"handler_id"`
	Data      map[string]any `json:"data,omitempty"`
}

type Payment struct {
	Handlers             []PaymentHandler    `json:"handlers"`
	SelectedInstrumentID string              `json:"selected_instrument_id,omitempty"`
	Instruments          []PaymentInstrument `json:"instruments"`
}

type Capability struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Spec    string         `json:"spec,omitempty"`
	Schema  string         `json:"schema,omitempty"`
	Extends string         `json:"extends,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// Envelope is the ucp version block attached to every session.
type Envelope struct {
	Version      string       `json:"version"`
	Capabilities []Capability `json:"capabilities,omitempty"`
}

// NewEnvelope returns the envelope stamped on sessions created by this server.
func NewEnvelope() Envelope {
	return Envelope{
		Version: ProtocolVersion,
		Capabilities: []Capability{
			{
				Name:    "dev.ucp.shopping.checkout",
				Version: ProtocolVersion,
			},
		},
	}
}

type Link struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// CheckoutSession is the mutable checkout record tracked from creation
// through completion. Totals are always recomputed from the current line
// items before the session is stored.
type CheckoutSession struct {
	UCP               Envelope        `json:"ucp"`
	ID                string          `json:"id"`
	LineItems         []LineItem      `json:"line_items"`
	Buyer             *Buyer          `json:"buyer,omitempty"`
	Status            SessionStatus   `json:"status"`
	Currency          string          `json:"currency"`
	Totals            []Total         `json:"totals"`
	Links             []Link          `json:"links"`
	ExpiresAt         time.Time       `json:"expires_at"`
	ContinueURL       string          `json:"continue_url,omitempty"`
	Payment           Payment         `json:"payment"`
	OrderID           string          `json:"order_id,omitempty"`
	OrderPermalinkURL string          `json:"order_permalink_url,omitempty"`
}

// Clone returns a deep copy. The store hands out clones so callers can never
// observe a session mutated by a concurrent request.
func (s *CheckoutSession) Clone() *CheckoutSession {
	if s == nil {
		return nil
	}
	out := *s
	out.UCP.Capabilities = cloneCapabilities(s.UCP.Capabilities)
	out.LineItems = CloneLineItems(s.LineItems)
	out.Totals = cloneTotals(s.Totals)
	if s.Links != nil {
		out.Links = make([]Link, len(s.Links))
		copy(out.Links, s.Links)
	}
	if s.Buyer != nil {
		buyer := *s.Buyer
		out.Buyer = &buyer
	}
	out.Payment = clonePayment(s.Payment)
	return &out
}

// CloneLineItems deep-copies a line item slice, totals included.
func CloneLineItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, li := range items {
		li.Totals = cloneTotals(li.Totals)
		out[i] = li
	}
	return out
}

func cloneTotals(totals []Total) []Total {
	if totals == nil {
		return nil
	}
	out := make([]Total, len(totals))
	copy(out, totals)
	return out
}

func cloneCapabilities(caps []Capability) []Capability {
	if caps == nil {
		return nil
	}
	out := make([]Capability, len(caps))
	for i, c := range caps {
		c.Config = cloneMap(c.Config)
		out[i] = c
	}
	return out
}

func clonePayment(p Payment) Payment {
	out := p
	if p.Handlers != nil {
		out.Handlers = make([]PaymentHandler, len(p.Handlers))
		for i, h := range p.Handlers {
			h.InstrumentSchemas = append([]string(nil), h.InstrumentSchemas...)
			h.Config = cloneMap(h.Config)
			out.Handlers[i] = h
		}
	}
	if p.Instruments != nil {
		out.Instruments = make([]PaymentInstrument, len(p.Instruments))
		for i, in := range p.Instruments {
			in.Data = cloneMap(in.Data)
			out.Instruments[i] = in
		}
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
