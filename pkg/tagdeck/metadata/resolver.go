package metadata

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/config"
)

// WebsiteInfo is the resolved preview for a URL
type WebsiteInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	URL         string `json:"url"`
}

// Status reports whether an external provider answered or only the
// synthesized fallback was available. Advisory only: once the input is long
// enough, resolution always produces a result.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// MinInputLength is the shortest input that triggers resolution. Anything
// shorter is a no-op, not an error.
const MinInputLength = 3

var schemeRe = regexp.MustCompile(`^https?://`)

// provider is one step of the resolution chain. A nil result with a nil
// error means the provider answered but had nothing usable; both cases fall
// through to the next step.
type provider func(ctx context.Context, normalizedURL, domain string) (*WebsiteInfo, error)

// Resolver derives a title, description and favicon for a user-entered URL
// from an ordered chain of best-effort external services.
type Resolver struct {
	client    *resty.Client
	cfg       config.MetadataConfig
	providers []provider
}

// NewResolver creates a resolver using the configured provider endpoints
func NewResolver(cfg config.MetadataConfig) *Resolver {
	r := &Resolver{
		client: resty.New().SetTimeout(cfg.Timeout),
		cfg:    cfg,
	}
	r.providers = []provider{r.linkPreview, r.proxyScrape, r.microlink}
	return r
}

// NormalizeURL trims the input and prefixes https:// when no scheme is given
func NormalizeURL(input string) string {
	u := strings.TrimSpace(input)
	if !schemeRe.MatchString(u) {
		u = "https://" + u
	}
	return u
}

// ExtractDomain takes the host of a parsed URL; on parse failure it strips
// the scheme and a leading www. and cuts at the first slash.
func ExtractDomain(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Hostname()
	}
	d := schemeRe.ReplaceAllString(rawURL, "")
	d = strings.TrimPrefix(d, "www.")
	return strings.SplitN(d, "/", 2)[0]
}

// Resolve runs the provider chain over the user's input, first success wins.
// Every step recovers its own failure; when all of them come up empty the
// result is synthesized from the domain, with StatusError marking that only
// the fallback was available.
func (r *Resolver) Resolve(ctx context.Context, input string) (*WebsiteInfo, Status) {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) < MinInputLength {
		return nil, StatusIdle
	}

	normalized := NormalizeURL(input)
	domain := ExtractDomain(normalized)

	for _, p := range r.providers {
		info, err := p(ctx, normalized, domain)
		if err != nil {
			log.WithError(err).WithField("url", normalized).Debug("Metadata provider failed")
			continue
		}
		if info != nil {
			return info, StatusSuccess
		}
	}

	return &WebsiteInfo{
		Title:       domain,
		Description: defaultDescription(domain),
		Favicon:     r.faviconURL(domain),
		URL:         normalized,
	}, StatusError
}

func defaultDescription(domain string) string {
	return "来自 " + domain + " 的网站"
}

// faviconURL builds the favicon-by-domain service URL for a domain
func (r *Resolver) faviconURL(domain string) string {
	return r.cfg.FaviconURL + "?domain=" + url.QueryEscape(domain) + "&sz=32"
}
