package extract

import (
	"net/url"
	"strings"
)

// TrustReduction is subtracted from the risk score of content fetched from a
// trusted domain. Official sources quote scam wording when warning about it;
// without the reduction an advisory quoting a scam scores like the scam.
const TrustReduction = 60.0

// DefaultTrustedDomains are the regulator and exchange domains trusted out of
// the box. Operators extend or replace the list in configuration.
var DefaultTrustedDomains = []string{
	"sebi.gov.in",
	"rbi.org.in",
	"nseindia.com",
	"bseindia.com",
	"amfiindia.com",
	"mca.gov.in",
	"investor.gov",
	"sec.gov",
}

// TrustList answers whether a URL belongs to a trusted domain. Immutable
// after construction.
type TrustList struct {
	domains []string
}

// NewTrustList builds a trust list; an empty domain set falls back to the
// defaults.
func NewTrustList(domains []string) *TrustList {
	if len(domains) == 0 {
		domains = DefaultTrustedDomains
	}
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		normalized = append(normalized, d)
	}
	return &TrustList{domains: normalized}
}

// Trusted reports whether rawURL's host is a trusted domain or a subdomain of
// one. Unparseable URLs are never trusted.
func (t *TrustList) Trusted(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, d := range t.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
