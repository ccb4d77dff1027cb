package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/config"
)

func testConfig() config.MetadataConfig {
	return config.MetadataConfig{
		LinkPreviewURL: "https://api.linkpreview.net",
		LinkPreviewKey: "demo",
		ProxyURL:       "https://api.allorigins.win",
		MicrolinkURL:   "https://api.microlink.io",
		FaviconURL:     "https://www.google.com/s2/favicons",
		Timeout:        5 * time.Second,
	}
}

func setupResolver(t *testing.T) *Resolver {
	r := NewResolver(testConfig())
	httpmock.ActivateNonDefault(r.client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return r
}

func failAllProviders() {
	httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.allorigins\.win`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.microlink\.io`,
		httpmock.NewStringResponder(500, "nope"))
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"github.com", "https://github.com"},
		{"  github.com  ", "https://github.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/path", "https://example.com/path"},
		{"www.example.com/path", "https://www.example.com/path"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeURL(tc.in), "input %q", tc.in)
	}
}

func TestExtractDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com", "github.com"},
		{"https://www.example.com/some/path", "www.example.com"},
		{"https://example.com:8080/x", "example.com"},
		// Unparseable input falls back to string surgery
		{"www.example.com/path", "example.com"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractDomain(tc.in), "input %q", tc.in)
	}
}

func TestResolveShortInputIsNoOp(t *testing.T) {
	r := setupResolver(t)

	info, status := r.Resolve(context.Background(), "ab")
	assert.Nil(t, info)
	assert.Equal(t, StatusIdle, status)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestResolveFallbackWhenAllProvidersFail(t *testing.T) {
	r := setupResolver(t)
	failAllProviders()

	info, status := r.Resolve(context.Background(), "github.com")

	require.NotNil(t, info)
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "github.com", info.Title)
	assert.Equal(t, "来自 github.com 的网站", info.Description)
	assert.Equal(t, "https://www.google.com/s2/favicons?domain=github.com&sz=32", info.Favicon)
	assert.Equal(t, "https://github.com", info.URL)
}

func TestResolveLinkPreviewFirst(t *testing.T) {
	r := setupResolver(t)

	httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"title":       "GitHub",
			"description": "Where the world builds software",
			"image":       "https://github.com/og.png",
		}))

	info, status := r.Resolve(context.Background(), "github.com")

	require.NotNil(t, info)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "GitHub", info.Title)
	assert.Equal(t, "Where the world builds software", info.Description)
	assert.Equal(t, "https://github.com/og.png", info.Favicon)
	// The later providers must not have been consulted
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestLinkPreviewWithoutDescriptionFallsThrough(t *testing.T) {
	r := setupResolver(t)

	// Title alone is not a hit for the link-preview step
	httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
		httpmock.NewJsonResponderOrPanic(200, map[string]string{"title": "GitHub"}))
	httpmock.RegisterResponder("GET", `=~^https://api\.allorigins\.win`,
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"contents": `<html><head><title>GitHub · Home</title></head></html>`,
		}))

	info, status := r.Resolve(context.Background(), "github.com")

	require.NotNil(t, info)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "GitHub · Home", info.Title)
}

func TestResolveProxyScrape(t *testing.T) {
	metaVariants := map[string]string{
		"name-first":    `<meta name="description" content="A code host">`,
		"content-first": `<meta content="A code host" name="description">`,
	}

	for variant, meta := range metaVariants {
		t.Run(variant, func(t *testing.T) {
			r := setupResolver(t)

			httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
				httpmock.NewStringResponder(500, "nope"))
			httpmock.RegisterResponder("GET", `=~^https://api\.allorigins\.win`,
				httpmock.NewJsonResponderOrPanic(200, map[string]string{
					"contents": `<html><head><title> GitHub </title>` + meta + `</head></html>`,
				}))

			info, status := r.Resolve(context.Background(), "github.com")

			require.NotNil(t, info)
			assert.Equal(t, StatusSuccess, status)
			assert.Equal(t, "GitHub", info.Title)
			assert.Equal(t, "A code host", info.Description)
			assert.Equal(t, "https://www.google.com/s2/favicons?domain=github.com&sz=32", info.Favicon)
		})
	}
}

func TestResolveProxyScrapeDefaults(t *testing.T) {
	r := setupResolver(t)

	httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.allorigins\.win`,
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"contents": `<html><body>no head at all</body></html>`,
		}))

	info, status := r.Resolve(context.Background(), "github.com")

	require.NotNil(t, info)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "github.com", info.Title)
	assert.Equal(t, "来自 github.com 的网站", info.Description)
}

func TestResolveMicrolink(t *testing.T) {
	r := setupResolver(t)

	httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.allorigins\.win`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.microlink\.io`,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"title": "GitHub",
				"logo":  map[string]string{"url": "https://github.com/logo.png"},
			},
		}))

	info, status := r.Resolve(context.Background(), "github.com")

	require.NotNil(t, info)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "GitHub", info.Title)
	// Missing description falls back to the domain-derived default
	assert.Equal(t, "来自 github.com 的网站", info.Description)
	assert.Equal(t, "https://github.com/logo.png", info.Favicon)
}

func TestResolveMicrolinkNonSuccessFallsThrough(t *testing.T) {
	r := setupResolver(t)

	httpmock.RegisterResponder("GET", `=~^https://api\.linkpreview\.net`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.allorigins\.win`,
		httpmock.NewStringResponder(500, "nope"))
	httpmock.RegisterResponder("GET", `=~^https://api\.microlink\.io`,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{"status": "fail"}))

	info, status := r.Resolve(context.Background(), "github.com")

	require.NotNil(t, info)
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "github.com", info.Title)
}
