package indexing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePublisher struct {
	name string
	fail map[string]bool
	mu   sync.Mutex
	got  [][]string
}

func (f *fakePublisher) Name() string { return f.name }

func (f *fakePublisher) Publish(ctx context.Context, urls []string) []Result {
	f.mu.Lock()
	f.got = append(f.got, urls)
	f.mu.Unlock()

	out := make([]Result, len(urls))
	for i, u := range urls {
		out[i] = Result{Provider: f.name, URL: u, OK: !f.fail[u]}
		if f.fail[u] {
			out[i].Error = "rejected"
		}
	}
	return out
}

type fakeRecorder struct {
	runs []Run
	err  error
}

func (f *fakeRecorder) Record(ctx context.Context, run *Run) error {
	f.runs = append(f.runs, *run)
	return f.err
}

func testSite(t *testing.T) *content.Site {
	t.Helper()
	site, err := content.Load([]byte("name: X\npages:\n  - {path: /, title: A}\n  - {path: /pricing, title: B}\n"))
	require.NoError(t, err)
	return site
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL: "https://wearewacky.com",
		Indexing: config.IndexingConfig{
			APIToken: "s3cret",
			Timeout:  5 * time.Second,
		},
	}
}

func TestService_ResolveURLs(t *testing.T) {
	svc := NewService(nil, testSite(t), testConfig(), &fakeRecorder{}, discardLogger())

	tests := []struct {
		name    string
		raw     []string
		want    []string
		wantErr bool
	}{
		{"empty means sitemap", nil, []string{"https://wearewacky.com/", "https://wearewacky.com/pricing"}, false},
		{"blank entries mean sitemap", []string{" ", ""}, []string{"https://wearewacky.com/", "https://wearewacky.com/pricing"}, false},
		{"relative paths", []string{"/faq", "/faq"}, []string{"https://wearewacky.com/faq"}, false},
		{"absolute site URL", []string{"https://wearewacky.com/about"}, []string{"https://wearewacky.com/about"}, false},
		{"foreign host", []string{"https://example.com/"}, nil, true},
		{"wrong scheme", []string{"http://wearewacky.com/"}, nil, true},
		{"protocol relative", []string{"//example.com/x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveURLs(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrForeignURL))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Submit(t *testing.T) {
	google := &fakePublisher{name: ProviderGoogle}
	indexNow := &fakePublisher{name: ProviderIndexNow, fail: map[string]bool{"https://wearewacky.com/pricing": true}}
	runs := &fakeRecorder{}
	svc := NewService([]Publisher{google, indexNow}, testSite(t), testConfig(), runs, discardLogger())

	urls := []string{"https://wearewacky.com/", "https://wearewacky.com/pricing"}
	report, err := svc.Submit(context.Background(), TriggerAPI, urls)

	require.Error(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.Results, 4)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, [][]string{urls}, google.got)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, TriggerAPI, runs.runs[0].Trigger)
	assert.Equal(t, 2, runs.runs[0].URLCount)
	assert.Equal(t, 1, runs.runs[0].Failed)
}

func TestService_SubmitNoProviders(t *testing.T) {
	svc := NewService(nil, testSite(t), testConfig(), &fakeRecorder{}, discardLogger())

	_, err := svc.Submit(context.Background(), TriggerAPI, []string{"https://wearewacky.com/"})

	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestService_ReindexIgnoresRecorderFailure(t *testing.T) {
	pub := &fakePublisher{name: ProviderGoogle}
	svc := NewService([]Publisher{pub}, testSite(t), testConfig(), &fakeRecorder{err: errors.New("db down")}, discardLogger())

	require.NoError(t, svc.Reindex(context.Background()))
	require.Len(t, pub.got, 1)
	assert.Len(t, pub.got[0], 2)
}

func newTestEcho(t *testing.T, publishers ...Publisher) *echo.Echo {
	t.Helper()
	log := discardLogger()
	cfg := testConfig()
	e := echo.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(log)
	RegisterRoutes(e, NewHandler(NewService(publishers, testSite(t), cfg, &fakeRecorder{}, log), log), cfg)
	return e
}

func doSubmit(e *echo.Echo, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/indexing", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Submit(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		e := newTestEcho(t, &fakePublisher{name: ProviderGoogle})
		assert.Equal(t, http.StatusUnauthorized, doSubmit(e, "", `{}`).Code)
		assert.Equal(t, http.StatusUnauthorized, doSubmit(e, "wrong", `{}`).Code)
	})

	t.Run("success", func(t *testing.T) {
		pub := &fakePublisher{name: ProviderGoogle}
		e := newTestEcho(t, pub)

		rec := doSubmit(e, "s3cret", `{"urls":["/pricing"]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var report Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, []string{"https://wearewacky.com/pricing"}, report.URLs)
		assert.Equal(t, 0, report.Failed)
	})

	t.Run("foreign url", func(t *testing.T) {
		e := newTestEcho(t, &fakePublisher{name: ProviderGoogle})
		assert.Equal(t, http.StatusBadRequest, doSubmit(e, "s3cret", `{"urls":["https://evil.example/"]}`).Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		e := newTestEcho(t, &fakePublisher{name: ProviderGoogle, fail: map[string]bool{"https://wearewacky.com/": true}})

		rec := doSubmit(e, "s3cret", `{"urls":["/"]}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "results")
	})

	t.Run("no providers", func(t *testing.T) {
		e := newTestEcho(t)
		assert.Equal(t, http.StatusServiceUnavailable, doSubmit(e, "s3cret", ``).Code)
	})
}

func TestRegisterRoutes_DisabledWithoutToken(t *testing.T) {
	log := discardLogger()
	cfg := testConfig()
	cfg.Indexing.APIToken = ""
	e := echo.New()
	RegisterRoutes(e, NewHandler(NewService(nil, testSite(t), cfg, &fakeRecorder{}, log), log), cfg)

	assert.Empty(t, e.Routes())
}

func TestGooglePublisher_Publish(t *testing.T) {
	var mu sync.Mutex
	var got []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/urlNotifications:publish", r.URL.Path)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got = append(got, body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(body["url"], "/broken") {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Permission denied"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"urlNotificationMetadata":{"url":"` + body["url"] + `"}}`))
	}))
	defer srv.Close()

	cfg := &config.IndexingConfig{GoogleEndpoint: srv.URL + "/", Timeout: 5 * time.Second}
	p, err := NewGooglePublisher(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	results := p.Publish(context.Background(), []string{"https://wearewacky.com/", "https://wearewacky.com/broken"})

	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Error)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "URL_UPDATED", got[0]["type"])
}

func TestIndexNowPublisher_Publish(t *testing.T) {
	var mu sync.Mutex
	var payload indexNowPayload
	var status atomic.Int32
	status.Store(http.StatusAccepted)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Indexing.IndexNowKey = "abc123"
	cfg.Indexing.IndexNowEndpoint = srv.URL
	p, err := NewIndexNowPublisher(cfg, discardLogger())
	require.NoError(t, err)

	urls := []string{"https://wearewacky.com/", "https://wearewacky.com/faq"}
	results := p.Publish(context.Background(), urls)

	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	mu.Lock()
	assert.Equal(t, "wearewacky.com", payload.Host)
	assert.Equal(t, "abc123", payload.Key)
	assert.Equal(t, "https://wearewacky.com/abc123.txt", payload.KeyLocation)
	assert.Equal(t, urls, payload.URLList)
	mu.Unlock()

	status.Store(http.StatusUnprocessableEntity)
	results = p.Publish(context.Background(), urls)
	assert.False(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Contains(t, results[0].Error, "422")
}
