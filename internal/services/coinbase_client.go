package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
)

// CoinbaseClient consulta la API pública de Coinbase Exchange
type CoinbaseClient struct {
	baseURL         string
	httpClient      *http.Client
	productsTimeout time.Duration
	tickerTimeout   time.Duration
}

// NewCoinbaseClient crea el cliente con los timeouts de productos y de ticker
func NewCoinbaseClient(baseURL string, productsTimeout, tickerTimeout time.Duration) *CoinbaseClient {
	return &CoinbaseClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{},
		productsTimeout: productsTimeout,
		tickerTimeout:   tickerTimeout,
	}
}

// coinbaseTicker es la respuesta de /products/{id}/ticker
type coinbaseTicker struct {
	Price  string `json:"price"`
	Volume string `json:"volume"`
	Bid    string `json:"bid"`
	Ask    string `json:"ask"`
	Time   string `json:"time"`
}

// ListProducts obtiene el catálogo completo de productos del exchange
func (c *CoinbaseClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.productsTimeout)
	defer cancel()

	var products []models.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("error obteniendo productos: %w", err)
	}
	return products, nil
}

// GetTicker obtiene el ticker actual de un producto
func (c *CoinbaseClient) GetTicker(ctx context.Context, productID string) (models.Ticker, error) {
	ctx, cancel := context.WithTimeout(ctx, c.tickerTimeout)
	defer cancel()

	var raw coinbaseTicker
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID)+"/ticker", &raw); err != nil {
		return models.Ticker{}, fmt.Errorf("error obteniendo ticker de %s: %w", productID, err)
	}

	return models.Ticker{
		Price:     raw.Price,
		Volume24h: raw.Volume,
		Bid:       raw.Bid,
		Ask:       raw.Ask,
		Time:      raw.Time,
	}, nil
}

func (c *CoinbaseClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error leyendo respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("estado inesperado %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decodificando JSON: %w", err)
	}
	return nil
}
