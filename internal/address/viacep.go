package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultBaseURL = "https://viacep.com.br/ws"

// Client resolves CEPs against the ViaCEP JSON API. The circuit breaker only
// counts transport failures; a "not found" answer is a successful call.
// Concurrent lookups for the same code are collapsed with singleflight.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker[*viaCEPResponse]
	sfg        singleflight.Group
	logger     *zap.Logger
}

type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"`
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*viaCEPResponse](gobreaker.Settings{
		Name:    "viacep",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return c
}

func (c *Client) Resolve(ctx context.Context, cep string) (*Record, error) {
	v, err, _ := c.sfg.Do(cep, func() (interface{}, error) {
		return c.breaker.Execute(func() (*viaCEPResponse, error) {
			return c.fetch(ctx, cep)
		})
	})
	if err != nil {
		c.logger.Warn("cep lookup failed", zap.String("cep", cep), zap.Error(err))
		return nil, fmt.Errorf("viacep lookup: %w", err)
	}

	resp := v.(*viaCEPResponse)
	if resp.Erro {
		return nil, ErrCEPNotFound
	}

	return &Record{
		CEP:          resp.CEP,
		Street:       resp.Street,
		Neighborhood: resp.Neighborhood,
		City:         resp.City,
		State:        resp.State,
	}, nil
}

func (c *Client) fetch(ctx context.Context, cep string) (*viaCEPResponse, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if errDecode := json.NewDecoder(resp.Body).Decode(&body); errDecode != nil {
		return nil, fmt.Errorf("decode response: %w", errDecode)
	}

	return &body, nil
}
