package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSender struct {
	mu     sync.Mutex
	sent   []SendOptions
	err    error
	result *SendResult
}

func (r *recordingSender) Send(ctx context.Context, opts SendOptions) (*SendResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, opts)
	if r.err != nil {
		return nil, r.err
	}
	if r.result != nil {
		return r.result, nil
	}
	return &SendResult{Success: true, MessageID: "id-1"}, nil
}

func testConfig() *Config {
	return &Config{
		Enabled:     true,
		FromEmail:   "hello@wearewacky.com",
		FromName:    "Wacky Works Digital",
		OwnerEmail:  "team@wearewacky.com",
		SendTimeout: time.Second,
		SiteName:    "Wacky Works Digital",
		SiteURL:     "https://wearewacky.com/",
	}
}

func TestMailgunSenderValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError string
	}{
		{"all fields valid", func(c *Config) {}, ""},
		{"missing FromEmail", func(c *Config) { c.FromEmail = "" }, "EMAIL_FROM_ADDRESS is required"},
		{"missing FromName", func(c *Config) { c.FromName = "" }, "EMAIL_FROM_NAME is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.MailgunDomain = "mg.example.com"
			cfg.MailgunAPIKey = "key-abc123"
			tt.mutate(cfg)

			s := NewMailgunSender(cfg, testLogger())
			require.NotNil(t, s)

			err := s.validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantError)
		})
	}
}

func TestNewMailgunSender_NotConfigured(t *testing.T) {
	assert.Nil(t, NewMailgunSender(&Config{MailgunDomain: "mg.example.com"}, testLogger()))
}

func TestMailgunSender_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	cfg.MailgunDomain = "mg.example.com"
	cfg.MailgunAPIKey = "key-abc123"
	cfg.ListAddress = "news@mg.example.com"
	s := NewMailgunSender(cfg, testLogger())

	result, err := s.Send(context.Background(), SendOptions{To: "a@example.com"})
	require.NoError(t, err)
	assert.False(t, result.Success)

	assert.ErrorIs(t, s.AddMember(context.Background(), "a@example.com", ""), ErrDisabled)
}

func TestNewConfig(t *testing.T) {
	appCfg := &config.Config{BaseURL: "https://wearewacky.com"}
	appCfg.Email.Enabled = true
	appCfg.Email.MailgunDomain = "mg.wearewacky.com"
	appCfg.Email.MailgunAPIKey = "key"
	appCfg.Email.FromName = "Wacky Works Digital"
	appCfg.Email.OwnerEmail = "team@wearewacky.com"

	cfg := NewConfig(appCfg)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, 30*time.Second, cfg.SendTimeout)
	assert.Equal(t, "https://wearewacky.com/", cfg.SiteURL)
	assert.Equal(t, "team@wearewacky.com", cfg.OwnerEmail)
}

func TestNewSender(t *testing.T) {
	t.Run("no-op when not configured", func(t *testing.T) {
		sender := NewSender(testLogger(), &Config{Enabled: true})

		result, err := sender.Send(context.Background(), SendOptions{To: "test@example.com"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "noop-test@example.com", result.MessageID)
	})

	t.Run("no-op when disabled", func(t *testing.T) {
		sender := NewSender(testLogger(), &Config{MailgunDomain: "mg.example.com", MailgunAPIKey: "k"})
		_, ok := sender.(*noOpSender)
		assert.True(t, ok)
	})

	t.Run("mailgun when configured and enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.MailgunDomain = "mg.example.com"
		cfg.MailgunAPIKey = "k"
		_, ok := NewSender(testLogger(), cfg).(*MailgunSender)
		assert.True(t, ok)
	})
}

func TestNewListManager(t *testing.T) {
	cfg := testConfig()
	cfg.MailgunDomain = "mg.example.com"
	cfg.MailgunAPIKey = "k"

	_, ok := NewListManager(testLogger(), cfg).(*noOpSender)
	assert.True(t, ok, "no list address means no-op")

	cfg.ListAddress = "news@mg.example.com"
	_, ok = NewListManager(testLogger(), cfg).(*MailgunSender)
	assert.True(t, ok)

	assert.NoError(t, (&noOpSender{log: testLogger()}).AddMember(context.Background(), "a@b.c", ""))
}

func TestTemplateService_Embedded(t *testing.T) {
	ts, err := NewTemplateService(testLogger())
	require.NoError(t, err)

	for _, name := range []string{TemplateSubscribeConfirmation, TemplateSubscribeNotification, TemplateContactNotification} {
		assert.True(t, ts.HasTemplate(name), name)
	}

	result, err := ts.Render(TemplateSubscribeConfirmation, TemplateContext{
		"title":    "You are on the list",
		"siteName": "Wacky Works Digital",
		"siteUrl":  "https://wearewacky.com/",
		"email":    "a@example.com",
		"ctaUrl":   "https://wearewacky.com/",
		"ctaLabel": "Visit",
	})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, "<!DOCTYPE html>")
	assert.Contains(t, result.HTML, "<strong>a@example.com</strong>")
	assert.Contains(t, result.HTML, `href="https://wearewacky.com/"`)
	assert.Contains(t, result.Text, "You are on the list")
}

func TestTemplateService_EscapesInput(t *testing.T) {
	ts, err := NewTemplateService(testLogger())
	require.NoError(t, err)

	result, err := ts.Render(TemplateContactNotification, TemplateContext{
		"name":    "<script>alert(1)</script>",
		"email":   "x@example.com",
		"message": "hi",
	})
	require.NoError(t, err)

	assert.NotContains(t, result.HTML, "<script>")
	assert.Contains(t, result.HTML, "&lt;script&gt;")
}

func TestTemplateService_CustomFS(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/plain.hbs": {Data: []byte("[{{content}}]")},
		"partials/sig.hbs":  {Data: []byte("-- {{who}}")},
		"hello.hbs":         {Data: []byte("Hi {{name}} {{> sig}}")},
		"notes/ignored.txt": {Data: []byte("x")},
	}
	ts, err := NewTemplateServiceFS(fsys, testLogger())
	require.NoError(t, err)

	result, err := ts.RenderWithLayout("hello", TemplateContext{"name": "Ada", "who": "W"}, "plain")
	require.NoError(t, err)
	assert.Equal(t, "[Hi Ada -- W]", result.HTML)

	result, err = ts.RenderWithLayout("hello", TemplateContext{"name": "Ada", "who": "W"}, "missing")
	require.NoError(t, err)
	assert.Equal(t, "Hi Ada -- W", result.HTML)

	_, err = ts.Render("nope", nil)
	assert.ErrorContains(t, err, "template not found")
}

func TestGeneratePlainText(t *testing.T) {
	tests := []struct {
		name string
		ctx  TemplateContext
		want string
	}{
		{"explicit", TemplateContext{"plainText": "raw", "title": "T"}, "raw"},
		{"fields", TemplateContext{"title": "T", "message": "M", "ctaUrl": "https://x"}, "T\n\nM\n\nLink: https://x"},
		{"empty", TemplateContext{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generatePlainText(tt.ctx))
		})
	}
}

func newTestNotifier(t *testing.T, sender Sender) *Notifier {
	t.Helper()
	ts, err := NewTemplateService(testLogger())
	require.NoError(t, err)
	return NewNotifier(testConfig(), sender, ts, testLogger())
}

func TestNotifier_Subscribe(t *testing.T) {
	rec := &recordingSender{}
	n := newTestNotifier(t, rec)
	s := Subscription{Email: "new@example.com", RemoteIP: "203.0.113.9", ReceivedAt: time.Now()}

	require.NoError(t, n.SubscribeConfirmation(context.Background(), s))
	require.NoError(t, n.SubscribeNotification(context.Background(), s))

	require.Len(t, rec.sent, 2)
	assert.Equal(t, "new@example.com", rec.sent[0].To)
	assert.Contains(t, rec.sent[0].Subject, "Welcome")
	assert.Contains(t, rec.sent[0].HTML, "new@example.com")
	assert.Equal(t, []string{TemplateSubscribeConfirmation}, rec.sent[0].Tags)

	assert.Equal(t, "team@wearewacky.com", rec.sent[1].To)
	assert.Contains(t, rec.sent[1].HTML, "203.0.113.9")
}

func TestNotifier_Contact(t *testing.T) {
	rec := &recordingSender{}
	n := newTestNotifier(t, rec)

	err := n.ContactNotification(context.Background(), ContactMessage{
		ID:      "c-1",
		Name:    "Ada",
		Email:   "ada@example.com",
		Company: "Engines Ltd",
		Message: "Build us a site",
	})
	require.NoError(t, err)

	require.Len(t, rec.sent, 1)
	sent := rec.sent[0]
	assert.Equal(t, "team@wearewacky.com", sent.To)
	assert.Equal(t, "Ada <ada@example.com>", sent.ReplyTo)
	assert.Equal(t, "New enquiry from Ada (Engines Ltd)", sent.Subject)
	assert.Contains(t, sent.Text, "Company: Engines Ltd")
	assert.NotContains(t, sent.Text, "Budget:")
	assert.True(t, strings.HasSuffix(sent.Text, "Build us a site\n"))
}

func TestNotifier_Errors(t *testing.T) {
	t.Run("send failure is returned", func(t *testing.T) {
		n := newTestNotifier(t, &recordingSender{err: errors.New("mailgun down")})
		err := n.SubscribeConfirmation(context.Background(), Subscription{Email: "a@example.com"})
		assert.ErrorContains(t, err, "mailgun down")
	})

	t.Run("unsent result is not an error", func(t *testing.T) {
		n := newTestNotifier(t, &recordingSender{result: &SendResult{Error: "disabled"}})
		assert.NoError(t, n.SubscribeConfirmation(context.Background(), Subscription{Email: "a@example.com"}))
	})
}
