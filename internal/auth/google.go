package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// GoogleIdentity is what a verified Google ID token says about its holder.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier validates Google ID tokens issued for clientID.
type GoogleVerifier struct {
	validator *idtoken.Validator
	clientID  string
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	v, err := idtoken.NewValidator(ctx, option.WithHTTPClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}))
	if err != nil {
		return nil, fmt.Errorf("google id token validator: %w", err)
	}
	return &GoogleVerifier{validator: v, clientID: clientID}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	p, err := g.validator.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return identityFromClaims(p.Subject, p.Claims), nil
}

// email_verified arrives as a bool or as the string "true".
func identityFromClaims(subject string, claims map[string]interface{}) *GoogleIdentity {
	str := func(k string) string {
		s, _ := claims[k].(string)
		return s
	}

	id := &GoogleIdentity{
		Subject: subject,
		Email:   str("email"),
		Name:    str("name"),
		Picture: str("picture"),
	}
	switch v := claims["email_verified"].(type) {
	case bool:
		id.EmailVerified = v
	case string:
		id.EmailVerified = v == "true"
	}
	return id
}
