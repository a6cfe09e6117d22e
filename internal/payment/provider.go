package payment

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/soldera/orderpay/internal/domain/money"
	"github.com/soldera/orderpay/internal/domain/order"
)

const defaultProviderTimeout = 10 * time.Second

var _ order.PaymentChannel = (*Provider)(nil)

// Provider charges through a remote payment provider over HTTP. A provider
// decline comes back as a normal Outcome; transport failures, non-2xx
// statuses, and malformed bodies are infrastructure errors for the
// orchestrator boundary to absorb.
type Provider struct {
	baseURL string
	client  *http.Client
}

// ProviderOption customises the provider channel.
type ProviderOption func(*Provider)

// WithHTTPClient overrides the HTTP client (for tests).
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) { p.client = c }
}

// NewProvider creates a channel that posts charges to baseURL. The default
// client carries an OpenTelemetry-instrumented transport and a request
// timeout; callers needing different limits wrap the channel externally.
func NewProvider(baseURL string, opts ...ProviderOption) *Provider {
	p := &Provider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultProviderTimeout,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Charge posts a charge request for the order and decodes the provider's
// outcome.
func (p *Provider) Charge(ctx context.Context, orderID string, amount money.Money) (order.Outcome, error) {
	body := encodeChargeRequest(orderID, amount)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return order.Outcome{}, errors.Wrap(err, "build charge request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return order.Outcome{}, errors.Wrap(err, "call payment provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return order.Outcome{}, errors.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return order.Outcome{}, errors.Wrap(err, "read provider response")
	}

	out, err := decodeOutcome(raw)
	if err != nil {
		return order.Outcome{}, errors.Wrap(err, "decode provider response")
	}
	return out, nil
}

func encodeChargeRequest(orderID string, amount money.Money) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("order_id", func(e *jx.Encoder) { e.Str(orderID) })
		e.Field("amount", func(e *jx.Encoder) { e.Str(amount.Amount().StringFixed(2)) })
		e.Field("currency", func(e *jx.Encoder) { e.Str(amount.Currency()) })
	})
	return e.Bytes()
}

func decodeOutcome(raw []byte) (order.Outcome, error) {
	var out order.Outcome
	d := jx.DecodeBytes(raw)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "success":
			v, err := d.Bool()
			if err != nil {
				return err
			}
			out.Success = v
		case "transaction_id":
			v, err := d.Str()
			if err != nil {
				return err
			}
			out.TransactionID = v
		case "message":
			v, err := d.Str()
			if err != nil {
				return err
			}
			out.Message = v
		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return order.Outcome{}, err
	}
	return out, nil
}
