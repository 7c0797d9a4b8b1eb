package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/utils/logger"
)

// HTTPLicenseVerifier queries the electronic license verification
// gateway. Gateway-level failures (timeouts, non-2xx) surface as
// errors; a clean "not verified" answer comes back in the result.
type HTTPLicenseVerifier struct {
	client *http.Client
	logger logger.Logger
}

// NewHTTPLicenseVerifier creates a verifier with a bounded timeout
func NewHTTPLicenseVerifier(log logger.Logger) *HTTPLicenseVerifier {
	return &HTTPLicenseVerifier{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: log,
	}
}

func (v *HTTPLicenseVerifier) Verify(ctx context.Context, settings *models.VerificationSettings, req *models.LicenseVerificationRequest) (*models.LicenseVerificationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if settings.Username != "" {
		httpReq.SetBasicAuth(settings.Username, settings.Password)
	}

	resp, err := v.client.Do(httpReq)
	if err != nil {
		v.logger.Errorf("License verification request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("verification gateway returned status %d", resp.StatusCode)
	}

	result := &models.LicenseVerificationResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return result, nil
}
