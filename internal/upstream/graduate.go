package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"campusgate/internal/domain"

	"go.uber.org/zap"
)

// GraduateProvider authenticates graduate sub-identities against the
// graduate school system. It only vouches for the credential pair; profile
// fields still come from the primary portal afterwards.
type GraduateProvider struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewGraduateProvider(baseURL string, log *zap.Logger) *GraduateProvider {
	return &GraduateProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

type graduateResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

func (p *GraduateProvider) Authenticate(ctx context.Context, user, password string) (*domain.Profile, error) {
	form := url.Values{}
	form.Set("stuid", user)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/gradLogin", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("graduate system unreachable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		p.log.Warn("graduate system error status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body graduateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !body.Success {
		return nil, ErrUnauthorized
	}

	return &domain.Profile{Name: body.Name}, nil
}
