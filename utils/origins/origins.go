package origins

import (
	"net/url"
	"strings"
)

const allowAll = "*"

// IsSameDomain reports whether both URLs share a host (including port)
func IsSameDomain(url1, url2 string) bool {
	u1, err := url.Parse(url1)
	if err != nil {
		return false
	}
	u2, err := url.Parse(url2)
	if err != nil {
		return false
	}
	return u1.Host == u2.Host
}

// Policy decides which browser origins may call the server
type Policy struct {
	allowAll bool
	allowed  map[string]struct{}
	appURL   string
}

// NewPolicy builds a policy from a space-separated origin list, or "*" to allow every origin.
// Origins on the same domain as appURL are always allowed.
func NewPolicy(allowOrigin, appURL string) *Policy {
	policy := &Policy{
		allowed: make(map[string]struct{}),
		appURL:  appURL,
	}

	if strings.TrimSpace(allowOrigin) == allowAll {
		policy.allowAll = true
		return policy
	}

	for _, origin := range strings.Split(allowOrigin, " ") {
		if origin == "" {
			continue
		}
		policy.allowed[strings.ToLower(origin)] = struct{}{}
	}

	return policy
}

// IsValidOrigin compares origin as sent against the lowercased configured list
func (p *Policy) IsValidOrigin(origin string) bool {
	if p.allowAll {
		return true
	}
	if origin == "" {
		return false
	}
	if _, ok := p.allowed[origin]; ok {
		return true
	}
	return p.appURL != "" && IsSameDomain(origin, p.appURL)
}
