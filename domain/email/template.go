package email

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

//go:embed templates
var templateFS embed.FS

// Template names
const (
	TemplateSubscribeConfirmation = "subscribe_confirmation"
	TemplateSubscribeNotification = "subscribe_notification"
	TemplateContactNotification   = "contact_notification"

	defaultLayout = "base"
)

// TemplateService renders Handlebars email templates embedded in the binary.
//
// The tree under templates/ has the structure:
// - layouts/*.hbs - base layouts that wrap content
// - partials/*.hbs - reusable parts (buttons, footers)
// - *.hbs - main email templates
type TemplateService struct {
	log       *slog.Logger
	partials  map[string]string
	templates map[string]*raymond.Template
	layouts   map[string]*raymond.Template
}

// TemplateRenderResult contains the rendered email content
type TemplateRenderResult struct {
	HTML string
	Text string
}

// TemplateContext is the data passed to templates
type TemplateContext map[string]interface{}

// NewTemplateService parses every embedded template
func NewTemplateService(log *slog.Logger) (*TemplateService, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return NewTemplateServiceFS(sub, log)
}

// NewTemplateServiceFS parses templates from an arbitrary tree
func NewTemplateServiceFS(fsys fs.FS, log *slog.Logger) (*TemplateService, error) {
	ts := &TemplateService{
		log:       log.With(logger.Scope("email.template")),
		partials:  make(map[string]string),
		templates: make(map[string]*raymond.Template),
		layouts:   make(map[string]*raymond.Template),
	}

	if err := ts.load(fsys); err != nil {
		return nil, err
	}

	ts.log.Info("loaded email templates",
		slog.Int("templates", len(ts.templates)),
		slog.Int("layouts", len(ts.layouts)),
		slog.Int("partials", len(ts.partials)))

	return ts, nil
}

func templateName(file string) string {
	return strings.TrimSuffix(strings.TrimSuffix(path.Base(file), ".hbs"), ".html")
}

func hbsFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".hbs") {
			files = append(files, path.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func (ts *TemplateService) load(fsys fs.FS) error {
	// Partials are optional.
	if files, err := hbsFiles(fsys, "partials"); err == nil {
		for _, f := range files {
			body, err := fs.ReadFile(fsys, f)
			if err != nil {
				return fmt.Errorf("read partial %s: %w", f, err)
			}
			ts.partials[templateName(f)] = string(body)
		}
	}

	if files, err := hbsFiles(fsys, "layouts"); err == nil {
		for _, f := range files {
			tmpl, err := ts.parse(fsys, f)
			if err != nil {
				return err
			}
			ts.layouts[templateName(f)] = tmpl
		}
	}

	files, err := hbsFiles(fsys, ".")
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}
	for _, f := range files {
		tmpl, err := ts.parse(fsys, f)
		if err != nil {
			return err
		}
		ts.templates[templateName(f)] = tmpl
	}
	return nil
}

// parse compiles one file and attaches the partials to it. Partials are
// scoped per template because raymond's global registry panics on reuse.
func (ts *TemplateService) parse(fsys fs.FS, file string) (*raymond.Template, error) {
	body, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", file, err)
	}
	tmpl, err := raymond.Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
	}
	tmpl.RegisterPartials(ts.partials)
	return tmpl, nil
}

// Render renders a template wrapped in the base layout
func (ts *TemplateService) Render(templateName string, context TemplateContext) (*TemplateRenderResult, error) {
	return ts.RenderWithLayout(templateName, context, defaultLayout)
}

// RenderWithLayout renders a template with an explicit layout. An empty or
// unknown layout renders the template alone.
func (ts *TemplateService) RenderWithLayout(templateName string, context TemplateContext, layoutName string) (*TemplateRenderResult, error) {
	tmpl, ok := ts.templates[templateName]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", templateName)
	}

	content, err := tmpl.Exec(context)
	if err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", templateName, err)
	}

	if layoutName != "" {
		layout, ok := ts.layouts[layoutName]
		if !ok {
			ts.log.Debug("layout not found, using template directly",
				slog.String("layout", layoutName))
		} else {
			layoutCtx := make(TemplateContext, len(context)+1)
			for k, v := range context {
				layoutCtx[k] = v
			}
			layoutCtx["content"] = raymond.SafeString(content)

			content, err = layout.Exec(layoutCtx)
			if err != nil {
				return nil, fmt.Errorf("failed to render layout %s: %w", layoutName, err)
			}
		}
	}

	return &TemplateRenderResult{
		HTML: content,
		Text: generatePlainText(context),
	}, nil
}

// HasTemplate checks if a template exists
func (ts *TemplateService) HasTemplate(name string) bool {
	_, ok := ts.templates[name]
	return ok
}

// generatePlainText builds the text part from common context fields
func generatePlainText(context TemplateContext) string {
	if plainText, ok := context["plainText"].(string); ok && plainText != "" {
		return plainText
	}

	var parts []string
	for _, key := range []string{"title", "previewText", "message"} {
		if v, ok := context[key].(string); ok && v != "" {
			parts = append(parts, v, "")
		}
	}
	if ctaURL, ok := context["ctaUrl"].(string); ok && ctaURL != "" {
		parts = append(parts, fmt.Sprintf("Link: %s", ctaURL), "")
	}

	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}
