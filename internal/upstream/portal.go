package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campusgate/internal/domain"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// PortalProvider authenticates against the campus portal over a form POST.
type PortalProvider struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewPortalProvider(baseURL string, log *zap.Logger) *PortalProvider {
	return &PortalProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

type portalResponse struct {
	Success   bool   `json:"success"`
	Name      string `json:"name"`
	SchoolNum string `json:"schoolnum"`
}

func (p *PortalProvider) Authenticate(ctx context.Context, user, password string) (*domain.Profile, error) {
	form := url.Values{}
	form.Set("username", user)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("portal unreachable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		p.log.Warn("portal error status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body portalResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !body.Success {
		return nil, ErrUnauthorized
	}

	// Hand the portal session cookie back to whoever asked for it.
	if sc := sessionCaptureFrom(ctx); sc != nil {
		if cookie := joinCookies(resp.Cookies()); cookie != "" {
			sc.set(cookie)
		}
	}

	return &domain.Profile{Name: body.Name, Schoolnum: body.SchoolNum}, nil
}

func joinCookies(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
