package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mbarros/stock-control/internal/customer/domain"
	"github.com/mbarros/stock-control/pkg/logger"
)

// DefaultBaseURL points at the public ViaCEP API.
const DefaultBaseURL = "https://viacep.com.br"

// ViaCEPClient resolves Brazilian postal codes through the ViaCEP API.
type ViaCEPClient struct {
	baseURL string
	client  *http.Client
}

// NewViaCEPClient creates a new ViaCEP client. An empty baseURL selects
// the public API.
func NewViaCEPClient(baseURL string) *ViaCEPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ViaCEPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   3 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup resolves a postal code into a structured address. It returns
// ErrCEPNotFound when the API reports an unknown code.
func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (*domain.Address, error) {
	cep = strings.NewReplacer("-", "", ".", "", " ", "").Replace(cep)
	if len(cep) != 8 {
		return nil, fmt.Errorf("%w: %q is not an 8-digit CEP", domain.ErrCEPNotFound, cep)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build CEP request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CEP lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CEP lookup returned status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode CEP response: %w", err)
	}
	if body.Erro {
		return nil, domain.ErrCEPNotFound
	}

	logger.Logger.Debug().
		Str("cep", cep).
		Str("city", body.Localidade).
		Msg("Resolved address from CEP")

	return &domain.Address{
		Street:   body.Logradouro,
		District: body.Bairro,
		City:     body.Localidade,
		State:    body.UF,
		CEP:      body.CEP,
	}, nil
}
