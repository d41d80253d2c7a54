package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tripautostrade/area-directory/internal/config"
	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"go.uber.org/zap"
)

// Client - клиент Supabase PostgREST для таблицы areas di servizio.
// Используется как удалённый источник каталога и как цель импорта.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	table      string
	logger     *zap.Logger
}

var (
	_ repository.AreaSource = (*Client)(nil)
	_ repository.AreaWriter = (*Client)(nil)
)

// NewClient создает клиент PostgREST для таблицы areas di servizio
func NewClient(cfg *config.SupabaseConfig, table string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.URL,
		apiKey:  cfg.Key,
		table:   table,
		logger:  logger,
	}
}

// FetchAll выполняет select=* по всей таблице, без пагинации
func (c *Client) FetchAll(ctx context.Context) ([]domain.ServiceArea, error) {
	endpoint := c.tableURL() + "?select=*"

	c.logger.Debug("Calling Supabase REST API", zap.String("table", c.table))

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Supabase API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("supabase API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var rows []domain.ServiceAreaRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	areas := make([]domain.ServiceArea, 0, len(rows))
	for _, row := range rows {
		areas = append(areas, row.ToServiceArea())
	}

	c.logger.Debug("Supabase fetch successful", zap.Int("count", len(areas)))
	return areas, nil
}

// InsertBatch вставляет строки одним запросом; PostgREST выполняет его в одной транзакции
func (c *Client) InsertBatch(ctx context.Context, rows []domain.ServiceAreaRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("failed to encode rows: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(), bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Supabase insert failed",
			zap.Int("status_code", resp.StatusCode),
			zap.Int("rows", len(rows)),
			zap.String("body", string(body)))
		return 0, fmt.Errorf("supabase API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return len(rows), nil
}

func (c *Client) tableURL() string {
	return fmt.Sprintf("%s/rest/v1/%s", strings.TrimRight(c.baseURL, "/"), url.PathEscape(c.table))
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
