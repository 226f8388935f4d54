package contact

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
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/email"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/ratelimit"
)

type fakeStore struct {
	mu        sync.Mutex
	durable   bool
	created   []Submission
	notified  []string
	createErr error
}

func (f *fakeStore) Create(ctx context.Context, s *Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeStore) MarkNotified(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, id)
	return nil
}

func (f *fakeStore) Durable() bool { return f.durable }

type fakeNotifier struct {
	mu   sync.Mutex
	sent []email.ContactMessage
	err  error
}

func (f *fakeNotifier) ContactNotification(ctx context.Context, m email.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type testEnv struct {
	e        *echo.Echo
	store    *fakeStore
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T, durable bool) *testEnv {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	site, err := content.NewSite()
	require.NoError(t, err)

	env := &testEnv{store: &fakeStore{durable: durable}, notifier: &fakeNotifier{}}
	svc := NewService(env.store, env.notifier, site, log)
	svc.newID = func() string { return "11111111-2222-3333-4444-555555555555" }

	env.e = echo.New()
	env.e.HTTPErrorHandler = apperror.HTTPErrorHandler(log)
	RegisterRoutes(env.e, NewHandler(svc, log), ratelimit.NewRegistry(60, 2))
	return env
}

func (env *testEnv) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"name":"Ada","email":"Ada@Example.com","company":"Acme","budget":"Over €50k","message":"We need a new shop before spring."}`

func TestSubmit_Success(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.post(validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", resp.ID)

	require.Len(t, env.store.created, 1)
	stored := env.store.created[0]
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.Equal(t, "203.0.113.9", stored.RemoteIP)
	assert.Equal(t, "test-agent", stored.UserAgent)
	assert.Equal(t, []string{resp.ID}, env.store.notified)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "Acme", env.notifier.sent[0].Company)
	assert.Equal(t, resp.ID, env.notifier.sent[0].ID)
}

func TestSubmit_ValidationDetails(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.post(`{"name":" ","email":"nope","budget":"a lot","message":"short"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Details, "name")
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "budget")
	assert.Contains(t, body.Error.Details, "message")
	assert.NotContains(t, body.Error.Details, "company")
	assert.Empty(t, env.store.created)
}

func TestSubmit_MalformedBody(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.post(`{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_Honeypot(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.post(`{"name":"Bot","email":"bot@spam.example","message":"buy cheap things now","website":"http://spam.example"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, env.store.created)
	assert.Empty(t, env.notifier.sent)
}

func TestSubmit_NotificationFailure(t *testing.T) {
	t.Run("durable store keeps the submission", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.notifier.err = errors.New("mailgun 500")

		rec := env.post(validBody)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, env.store.created, 1)
		assert.Empty(t, env.store.notified)
	})

	t.Run("log store loses the submission", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.notifier.err = errors.New("mailgun 500")

		rec := env.post(validBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "upstream_error")
	})
}

func TestSubmit_StoreFailure(t *testing.T) {
	env := newTestEnv(t, true)
	env.store.createErr = errors.New("connection refused")

	rec := env.post(validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, env.notifier.sent)
}

func TestSubmit_RateLimited(t *testing.T) {
	env := newTestEnv(t, true)

	assert.Equal(t, http.StatusCreated, env.post(validBody).Code)
	assert.Equal(t, http.StatusCreated, env.post(validBody).Code)
	assert.Equal(t, http.StatusTooManyRequests, env.post(validBody).Code)
}

func TestNewStore_FallsBackToLog(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := NewStore(nil, log)

	_, ok := store.(*LogStore)
	assert.True(t, ok)
	assert.False(t, store.Durable())
	assert.NoError(t, store.Create(context.Background(), &Submission{ID: "x"}))
}
