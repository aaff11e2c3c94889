package pricefeed

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"perpScope/internal/model"
)

// DefaultBaseURL points at the protocol's metadata backend.
const DefaultBaseURL = "https://metadata-backend.ostium.io"

const (
	latestPricesPath = "/PricePublish/latest-prices"

	requestTimeout  = 30 * time.Second
	maxIdleConns    = 100
	maxConnsPerHost = 30
	idleConnTimeout = 300 * time.Second
)

// StatusError reports a non-200 response from the price service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch prices: status %d", e.StatusCode)
}

// NotFoundError reports that no quote matched the requested asset pair.
type NotFoundError struct {
	From string
	To   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no price found for pair: %s/%s", e.From, e.To)
}

// Client fetches the current price table from the metadata service.
//
// A fetch that fails certificate verification is retried once through a
// transport with verification disabled. Some deployments front the service
// with chains standard validation rejects, and the price table is public
// data; only that failure class takes the fallback path.
type Client struct {
	baseURL string
	logger  *zap.Logger

	client   *http.Client
	insecure *http.Client
}

// NewClient builds a price client for the given base URL. An empty baseURL
// selects DefaultBaseURL; a nil logger disables logging.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
		client:   &http.Client{Timeout: requestTimeout, Transport: newTransport(false)},
		insecure: &http.Client{Timeout: requestTimeout, Transport: newTransport(true)},
	}
}

func newTransport(skipVerify bool) *http.Transport {
	transport := &http.Transport{
		MaxIdleConns:    maxIdleConns,
		MaxConnsPerHost: maxConnsPerHost,
		IdleConnTimeout: idleConnTimeout,
	}
	if skipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return transport
}

// LatestPrices fetches the full current price table in one round trip.
func (c *Client) LatestPrices(ctx context.Context) ([]model.PriceQuote, error) {
	quotes, err := c.fetch(ctx, c.client)
	if err != nil && isCertificateError(err) {
		c.logger.Warn("certificate verification failed, retrying without verification", zap.Error(err))
		quotes, err = c.fetch(ctx, c.insecure)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch latest prices: %w", err)
	}
	return quotes, nil
}

// PriceRecord returns the first quote whose (From, To) pair matches exactly.
func (c *Client) PriceRecord(ctx context.Context, from, to string) (model.PriceQuote, error) {
	quotes, err := c.LatestPrices(ctx)
	if err != nil {
		return model.PriceQuote{}, err
	}
	for _, quote := range quotes {
		if quote.From == from && quote.To == to {
			c.logger.Debug("price record", zap.String("from", from), zap.String("to", to), zap.Float64("mid", quote.Mid))
			return quote, nil
		}
	}
	return model.PriceQuote{}, &NotFoundError{From: from, To: to}
}

// Price returns the mid price and market-state flags for an asset pair.
// Fields absent from the served record come back as their zero values.
func (c *Client) Price(ctx context.Context, from, to string) (mid float64, isMarketOpen, isDayTradingClosed bool, err error) {
	quote, err := c.PriceRecord(ctx, from, to)
	if err != nil {
		return 0, false, false, err
	}
	return quote.Mid, quote.IsMarketOpen, quote.IsDayTradingClosed, nil
}

func (c *Client) fetch(ctx context.Context, client *http.Client) ([]model.PriceQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+latestPricesPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var quotes []model.PriceQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("decode prices: %w", err)
	}
	return quotes, nil
}

// isCertificateError reports whether err is a certificate-verification
// failure. Other TLS or transport faults must not downgrade to the
// non-verifying client.
func isCertificateError(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &invalidErr)
}
