package http

import (
	"net/http"
	"strings"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

// DiscoveryProfile is the capability document served at /.well-known/ucp.
// Its content is static configuration, assembled once at startup.
type DiscoveryProfile struct {
	UCP         ProfileInfo `json:"ucp"`
	Payment     PaymentInfo `json:"payment"`
	SigningKeys any         `json:"signing_keys"`
}

type ProfileInfo struct {
	Version      string                    `json:"version"`
	Services     map[string]ProfileService `json:"services"`
	Capabilities []domain.Capability       `json:"capabilities"`
}

type ProfileService struct {
	Version  string      `json:"version"`
	Spec     string      `json:"spec"`
	REST     RESTBinding `json:"rest"`
	MCP      any         `json:"mcp"`
	A2A      any         `json:"a2a"`
	Embedded any         `json:"embedded"`
}

type RESTBinding struct {
	Schema   string `json:"schema"`
	Endpoint string `json:"endpoint"`
}

type PaymentInfo struct {
	Handlers []domain.PaymentHandler `json:"handlers"`
}

type DiscoveryHandler struct {
	profile DiscoveryProfile
}

func NewDiscoveryHandler(baseURL string) *DiscoveryHandler {
	return &DiscoveryHandler{profile: buildProfile(strings.TrimRight(baseURL, "/"))}
}

func buildProfile(baseURL string) DiscoveryProfile {
	return DiscoveryProfile{
		UCP: ProfileInfo{
			Version: domain.ProtocolVersion,
			Services: map[string]ProfileService{
				"dev.ucp.shopping": {
					Version: domain.ProtocolVersion,
					Spec:    "https://ucp.dev/specs/shopping",
					REST: RESTBinding{
						Schema:   "https://ucp.dev/services/shopping/openapi.json",
						Endpoint: baseURL + "/",
					},
				},
			},
			Capabilities: []domain.Capability{
				{
					Name:    "dev.ucp.shopping.checkout",
					Version: domain.ProtocolVersion,
					Spec:    "https://ucp.dev/specs/shopping/checkout",
					Schema:  "https://ucp.dev/schemas/shopping/checkout.json",
				},
				{
					Name:    "dev.ucp.shopping.fulfillment",
					Version: domain.ProtocolVersion,
					Spec:    "https://ucp.dev/specs/shopping/fulfillment",
					Schema:  "https://ucp.dev/schemas/shopping/fulfillment.json",
					Extends: "dev.ucp.shopping.checkout",
				},
			},
		},
		Payment: PaymentInfo{
			Handlers: []domain.PaymentHandler{
				{
					ID:           "stripe",
					Name:         "com.stripe.payment",
					Version:      domain.ProtocolVersion,
					Spec:         "https://stripe.com/ucp/spec",
					ConfigSchema: "https://stripe.com/ucp/config.json",
					InstrumentSchemas: []string{
						"https://ucp.dev/schemas/shopping/types/card_payment_instrument.json",
					},
					Config: map[string]any{
						"publishable_key": "pk_test_example",
					},
				},
			},
		},
	}
}

// GET /.well-known/ucp
func (h *DiscoveryHandler) Profile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profile)
}

// GET /health
func (h *DiscoveryHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": domain.ProtocolVersion,
	})
}
