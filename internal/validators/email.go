package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const defaultLookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver the checker needs.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainChecker accepts an address when its domain has an MX record, or
// at least resolves.
type DomainChecker struct {
	Resolver Resolver
	Timeout  time.Duration
}

func NewDomainChecker(timeout time.Duration) *DomainChecker {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &DomainChecker{Resolver: net.DefaultResolver, Timeout: timeout}
}

// Domain returns the lower-cased part after the last "@", or "" when email
// has none.
func Domain(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func (d *DomainChecker) Valid(email string) bool {
	domain := Domain(email)
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	if mx, err := d.Resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := d.Resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
