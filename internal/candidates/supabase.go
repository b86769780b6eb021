package candidates

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/lente/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	restPath        = "/rest/v1"
	userAgent       = "spigell/lente"
	contentType     = "application/json"
	contentEncoding = "gzip"

	defaultPageSize     = 500
	defaultMaxRetries   = 2
	defaultRetryBackoff = 500 * time.Millisecond

	// PostgREST on the hosted free tier throttles bursts, so requests are spaced out.
	defaultRequestsPerSecond = 10
)

// SupabaseClient reads candidates through the PostgREST API of a Supabase project.
type SupabaseClient struct {
	token  string
	logger *zap.Logger

	HTTPClient   *http.Client
	UserAgent    string
	BaseURL      string
	Table        string
	PageSize     int
	MaxRetries   int
	RetryBackoff time.Duration
	Limiter      *rate.Limiter
}

type Row map[string]any

func NewSupabaseClient(baseURL, anonKey string, logger *zap.Logger) (*SupabaseClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("supabase url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse supabase url: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SupabaseClient{
		token:  strings.TrimSpace(anonKey),
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent:    userAgent,
		BaseURL:      baseURL,
		Table:        defaultTable,
		PageSize:     defaultPageSize,
		MaxRetries:   defaultMaxRetries,
		RetryBackoff: defaultRetryBackoff,
		Limiter:      rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultRequestsPerSecond),
	}, nil
}

func (c *SupabaseClient) Name() string { return SourceSupabase + ":" + c.Table }

func (c *SupabaseClient) Close() error {
	c.HTTPClient.CloseIdleConnections()
	return nil
}

// Load fetches every row of the candidates table ordered by name.
func (c *SupabaseClient) Load(ctx context.Context) (*Candidates, error) {
	rows, err := c.GetRows(ctx, c.Table, url.Values{
		"select": []string{"*"},
		"order":  []string{"name.asc"},
	})
	if err != nil {
		return nil, err
	}

	var items []*Candidate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &items,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(rows); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	result := &Candidates{Items: items}
	result.normalize()
	return result, nil
}

// GetRows makes GET requests to the table endpoint and returns rows from all pages.
func (c *SupabaseClient) GetRows(ctx context.Context, table string, q url.Values) ([]Row, error) {
	endpoint := fmt.Sprintf("%s%s/%s", c.BaseURL, restPath, url.PathEscape(table))
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var rows []Row
	for offset := 0; ; offset += pageSize {
		page := url.Values{}
		for k, v := range q {
			page[k] = v
		}
		page.Set("limit", strconv.Itoa(pageSize))
		page.Set("offset", strconv.Itoa(offset))

		var batch []Row
		if err := c.getJSON(ctx, endpoint, page, &batch); err != nil {
			return nil, err
		}

		rows = append(rows, batch...)

		if len(batch) < pageSize {
			break
		}

		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"page at offset %d is full (%d rows)", offset, len(batch)),
		))
	}

	return rows, nil
}

func (c *SupabaseClient) getJSON(ctx context.Context, endpoint string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("bad status: %s: %s", resp.Status, utils.TruncateForLog(string(data), 200))
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// request retries on transport errors, 429 and 5xx responses.
func (c *SupabaseClient) request(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		c.logger.Debug("make request", zap.String("url", req.URL.String()), zap.Int("attempt", attempt))

		resp, err := c.HTTPClient.Do(req.Clone(ctx))
		if err == nil && !retryable(resp.StatusCode) {
			return resp, nil
		}

		if attempt >= c.MaxRetries {
			return resp, err
		}

		if err != nil {
			c.logger.Debug("request failed, retrying", zap.Error(err))
		} else {
			c.logger.Debug("retryable status, retrying", zap.String("status", resp.Status))
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			resp.Body.Close()
		}

		if err := utils.WaitFor(ctx, c.RetryBackoff*time.Duration(attempt+1)); err != nil {
			return nil, err
		}
	}
}

func (c *SupabaseClient) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("apikey", c.token)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
