package zrexpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/a7delivery/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the Procolis API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// DefaultBaseURL is the production Procolis API endpoint
const DefaultBaseURL = "https://procolis.com/api_v1"

// Adapter implements the Carrier interface for the ZRExpress (Procolis) API
type Adapter struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the adapter
type Option func(*Adapter)

// WithHTTPClient overrides the HTTP client, used in tests
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = client
	}
}

// NewAdapter creates a new ZRExpress adapter against the given API base URL
func NewAdapter(baseURL string, timeout time.Duration, opts ...Option) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	a := &Adapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Dispatch sends the parcels to the carrier in a single batch and reports
// the outcome per parcel
func (a *Adapter) Dispatch(ctx context.Context, creds integration.CarrierCredentials, parcels []integration.Parcel) (*integration.DispatchResult, error) {
	if !creds.Configured() {
		return nil, integration.ErrPlatformNotConfigured
	}

	payload := dispatchRequest{Colis: make([]colis, 0, len(parcels))}
	for _, p := range parcels {
		payload.Colis = append(payload.Colis, colisFromParcel(p))
	}

	body, err := a.doRequest(ctx, http.MethodPost, a.baseURL+"/add_colis", creds, payload)
	if err != nil {
		return nil, err
	}

	var resp dispatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse dispatch response: %v", integration.ErrPlatformInvalidResponse, err)
	}

	// The API echoes each parcel back with a MessageRetour verdict. Parcels
	// missing from the echo are treated as accepted.
	verdicts := make(map[string]string, len(resp.Colis))
	for _, c := range resp.Colis {
		verdicts[c.Tracking] = c.MessageRetour
	}

	result := &integration.DispatchResult{DispatchedAt: time.Now().UTC()}
	for _, p := range parcels {
		msg, ok := verdicts[p.Tracking]
		if ok && !isAccepted(msg) {
			result.FailedCount++
			result.Failures = append(result.Failures, integration.DispatchFailure{
				OrderRef: p.OrderRef,
				Message:  msg,
			})
			continue
		}
		result.SuccessCount++
		result.AcceptedRefs = append(result.AcceptedRefs, p.OrderRef)
	}
	result.Finalize()

	return result, nil
}

// TestConnection probes the carrier token endpoint
func (a *Adapter) TestConnection(ctx context.Context, creds integration.CarrierCredentials) integration.ConnectionStatus {
	if !creds.Configured() {
		return integration.ConnectionStatus{OK: false, Detail: "carrier token and key are not configured"}
	}

	if _, err := a.doRequest(ctx, http.MethodGet, a.baseURL+"/token", creds, nil); err != nil {
		return integration.ConnectionStatus{OK: false, Detail: err.Error()}
	}
	return integration.ConnectionStatus{OK: true, Detail: "connection successful"}
}

// doRequest performs an authenticated request against the Procolis API
func (a *Adapter) doRequest(ctx context.Context, method, url string, creds integration.CarrierCredentials, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("zrexpress: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("zrexpress: failed to create request: %w", err)
	}
	req.Header.Set("token", creds.Token)
	req.Header.Set("key", creds.Key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("zrexpress: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformAuthFailed, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// colisFromParcel maps a parcel onto the Procolis wire format
func colisFromParcel(p integration.Parcel) colis {
	return colis{
		Tracking:      p.Tracking,
		TypeLivraison: "0",
		TypeColis:     "0",
		Confrimee:     "",
		Client:        p.Client,
		MobileA:       p.Phone,
		MobileB:       "",
		Adresse:       p.Address,
		IDWilaya:      p.WilayaID,
		Commune:       p.Commune,
		Total:         toCentimes(p.Total),
		Note:          p.Note,
		TProduit:      p.Products,
		IDExterne:     p.ExternalID,
		Source:        "A7delivery",
	}
}

// toCentimes renders a dinar amount as an integer centime string
func toCentimes(total decimal.Decimal) string {
	return strconv.FormatInt(total.Mul(decimal.NewFromInt(100)).IntPart(), 10)
}

// isAccepted reports whether a MessageRetour verdict means the parcel was taken
func isAccepted(msg string) bool {
	return msg == "" || strings.EqualFold(msg, "good")
}

// Ensure Adapter implements the Carrier interface
var _ integration.Carrier = (*Adapter)(nil)
