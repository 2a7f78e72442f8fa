package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(token)
	c.baseURL = srv.URL
	return c
}

func TestLatest(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/yuk7/ArchWSL/releases/latest", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v22.10.16.0","name":"22.10.16.0","html_url":"https://example.com/rel"}`))
	}, "")

	rel, err := c.Latest(context.Background(), "yuk7", "ArchWSL")
	require.NoError(t, err)
	assert.Equal(t, "v22.10.16.0", rel.TagName)
	assert.Equal(t, "https://example.com/rel", rel.HTMLURL)
}

func TestLatest_TokenHeader(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"tag_name":"v1.0.0"}`))
	}, "ghp_test")

	_, err := c.Latest(context.Background(), "o", "r")
	require.NoError(t, err)
}

func TestLatest_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, "")

	_, err := c.Latest(context.Background(), "o", "r")
	require.ErrorIs(t, err, ErrNoReleases)
}

func TestLatest_RateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, "")

	_, err := c.Latest(context.Background(), "o", "r")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestLatest_EmptyTag(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, "")

	_, err := c.Latest(context.Background(), "o", "r")
	require.Error(t, err)
}

func TestLatest_SingleAttempt(t *testing.T) {
	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	_, err := c.Latest(context.Background(), "o", "r")
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "the probe must not retry")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		tag        string
		comparable bool
		update     bool
	}{
		{"newer available", "1.0.0", "v1.1.0", true, true},
		{"up to date", "1.1.0", "v1.1.0", true, false},
		{"ahead of release", "2.0.0", "v1.1.0", true, false},
		{"v prefix on current", "v1.0.0", "v1.0.1", true, true},
		{"dev build", "dev", "v1.0.0", false, false},
		{"garbage tag", "1.0.0", "nightly", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Compare(tt.current, &Release{TagName: tt.tag, HTMLURL: "u"})
			assert.Equal(t, tt.comparable, status.Comparable)
			assert.Equal(t, tt.update, status.UpdateAvailable)
			assert.Equal(t, tt.tag, status.LatestTag)
		})
	}
}
