package metadata

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	titleRe = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	// The description meta tag appears with name before content and the
	// other way round; match both orders.
	descNameFirstRe    = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']+)["'][^>]*>`)
	descContentFirstRe = regexp.MustCompile(`(?i)<meta[^>]*content=["']([^"']+)["'][^>]*name=["']description["'][^>]*>`)
)

type linkPreviewResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// linkPreview queries the link-preview service. It only counts as a hit when
// both a title and a description come back.
func (r *Resolver) linkPreview(ctx context.Context, normalizedURL, domain string) (*WebsiteInfo, error) {
	var body linkPreviewResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": r.cfg.LinkPreviewKey,
			"q":   normalizedURL,
		}).
		SetResult(&body).
		Get(r.cfg.LinkPreviewURL)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("linkpreview: status %s", resp.Status())
	}
	if body.Title == "" || body.Description == "" {
		return nil, nil
	}

	favicon := body.Image
	if favicon == "" {
		favicon = r.faviconURL(domain)
	}
	return &WebsiteInfo{
		Title:       body.Title,
		Description: body.Description,
		Favicon:     favicon,
		URL:         normalizedURL,
	}, nil
}

type proxyResponse struct {
	Contents string `json:"contents"`
}

// proxyScrape fetches the raw HTML through the CORS proxy and pattern-matches
// the title and description meta tag out of it. Title and description fall
// back to domain-derived defaults; the favicon always comes from the
// favicon-by-domain service on this path.
func (r *Resolver) proxyScrape(ctx context.Context, normalizedURL, domain string) (*WebsiteInfo, error) {
	var body proxyResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("url", normalizedURL).
		SetResult(&body).
		Get(r.cfg.ProxyURL + "/get")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("proxy fetch: status %s", resp.Status())
	}

	html := body.Contents
	title := domain
	if m := titleRe.FindStringSubmatch(html); m != nil {
		title = strings.TrimSpace(m[1])
	}

	description := defaultDescription(domain)
	if m := descNameFirstRe.FindStringSubmatch(html); m != nil {
		description = strings.TrimSpace(m[1])
	} else if m := descContentFirstRe.FindStringSubmatch(html); m != nil {
		description = strings.TrimSpace(m[1])
	}

	return &WebsiteInfo{
		Title:       title,
		Description: description,
		Favicon:     r.faviconURL(domain),
		URL:         normalizedURL,
	}, nil
}

type microlinkResponse struct {
	Status string `json:"status"`
	Data   *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Logo        *struct {
			URL string `json:"url"`
		} `json:"logo"`
	} `json:"data"`
}

// microlink queries the page-metadata service. It counts as a hit only when
// the service reports success with a data payload; individual fields fall
// back to domain-derived defaults.
func (r *Resolver) microlink(ctx context.Context, normalizedURL, domain string) (*WebsiteInfo, error) {
	var body microlinkResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("url", normalizedURL).
		SetResult(&body).
		Get(r.cfg.MicrolinkURL)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("microlink: status %s", resp.Status())
	}
	if body.Status != "success" || body.Data == nil {
		return nil, nil
	}

	title := body.Data.Title
	if title == "" {
		title = domain
	}
	description := body.Data.Description
	if description == "" {
		description = defaultDescription(domain)
	}
	favicon := r.faviconURL(domain)
	if body.Data.Logo != nil && body.Data.Logo.URL != "" {
		favicon = body.Data.Logo.URL
	}

	return &WebsiteInfo{
		Title:       title,
		Description: description,
		Favicon:     favicon,
		URL:         normalizedURL,
	}, nil
}
