package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo?access_token="
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleRevokeURL    = "https://oauth2.googleapis.com/revoke"
)

// GoogleProvider authenticates identities through Google OAuth2.
type GoogleProvider struct {
	conf       *oauth2.Config
	httpClient *http.Client

	tokenInfoURL string
	userInfoURL  string
	revokeURL    string
}

var _ OAuthProvider = (*GoogleProvider)(nil)

// NewGoogleProvider creates a Google OAuth2 provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		tokenInfoURL: googleTokenInfoURL,
		userInfoURL:  googleUserInfoURL,
		revokeURL:    googleRevokeURL,
	}
}

// Type returns ProviderOAuth2.
func (p *GoogleProvider) Type() ProviderType { return ProviderOAuth2 }

// AuthURL builds the consent URL. Offline access with forced approval makes
// Google return a refresh token on every exchange.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token pair.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (Tokens, error) {
	tok, err := p.conf.Exchange(p.clientCtx(ctx), code)
	if err != nil {
		if rejected(err) {
			return Tokens{}, fmt.Errorf("%w: %w", ErrInvalidCode, err)
		}
		return Tokens{}, fmt.Errorf("%w: exchange: %w", ErrProviderUnavailable, err)
	}
	return Tokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

// Authenticate is not part of the OAuth2 flow; credentials arrive as an
// authorization code through Exchange.
func (p *GoogleProvider) Authenticate(context.Context, Identity, string) error {
	return fmt.Errorf("%w: google authenticates by authorization code", ErrUnsupported)
}

// ValidateAccessToken introspects token and returns the verified email of
// its owner.
func (p *GoogleProvider) ValidateAccessToken(ctx context.Context, token string) (Principal, error) {
	var info struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := p.getJSON(ctx, p.tokenInfoURL+url.QueryEscape(token), "", &info); err != nil {
		return Principal{}, err
	}
	if !info.VerifiedEmail {
		return Principal{}, fmt.Errorf("%w: email is not verified", ErrInvalidToken)
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := p.getJSON(ctx, p.userInfoURL, token, &user); err != nil {
		return Principal{}, err
	}
	email := user.Email
	if email == "" {
		email = info.Email
	}
	if email == "" {
		return Principal{}, fmt.Errorf("%w: no email in profile", ErrInvalidToken)
	}

	return Principal{Email: strings.ToLower(email), TypeAuth: ProviderOAuth2}, nil
}

// RefreshAccessToken obtains a new access token for refreshToken.
func (p *GoogleProvider) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	ts := p.conf.TokenSource(p.clientCtx(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := ts.Token()
	if err != nil {
		if rejected(err) {
			return "", fmt.Errorf("%w: refresh: %w", ErrInvalidToken, err)
		}
		return "", fmt.Errorf("%w: refresh: %w", ErrProviderUnavailable, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidToken)
	}
	return tok.AccessToken, nil
}

// RevokeToken revokes accessToken at Google.
func (p *GoogleProvider) RevokeToken(ctx context.Context, accessToken string) error {
	form := url.Values{"token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: revoke: %w", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return statusErr("revoke", resp.StatusCode)
}

func (p *GoogleProvider) getJSON(ctx context.Context, endpoint, bearer string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := statusErr("google api", resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrProviderUnavailable, err)
	}
	return nil
}

func (p *GoogleProvider) clientCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func statusErr(op string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 500:
		return fmt.Errorf("%w: %s returned status %d", ErrProviderUnavailable, op, code)
	default:
		return fmt.Errorf("%w: %s returned status %d", ErrInvalidToken, op, code)
	}
}

// rejected reports whether the token endpoint refused the grant, as opposed
// to being unreachable or failing.
func rejected(err error) bool {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return false
	}
	return re.Response == nil || re.Response.StatusCode < 500
}
