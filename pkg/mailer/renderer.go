package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns templates from an fs.FS into HTML and text bodies.
// Parsed templates and layouts are cached; it is safe for concurrent use.
type Renderer struct {
	fs          fs.FS
	md          goldmark.Markdown
	templateDir string
	layoutDir   string

	mu        sync.RWMutex
	templates map[string]*cachedTemplate
	layouts   map[string]*template.Template
}

type cachedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// RendererConfig sets template locations inside the filesystem.
type RendererConfig struct {
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"
}

// NewRenderer creates a Renderer reading from fsys.
func NewRenderer(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          fsys,
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, NewFileLinkExtension()),
		),
		templates: make(map[string]*cachedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// RenderResult is a rendered email body.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // executed markdown, before HTML conversion
}

// Render executes templateName with data and wraps it in layout.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	tmpl, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := tmpl.body.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %w", ErrRenderFailed, templateName, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %w", ErrRenderFailed, err)
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := layoutTmpl.Execute(&out, map[string]any{
		"Content":  template.HTML(content.String()),
		"Metadata": tmpl.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %w", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     md.String(),
		Metadata: tmpl.metadata,
	}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	return cached(&r.mu, r.templates, name, func() (*cachedTemplate, error) {
		content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, err)
		}
		parsed, err := ParseTemplate(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		body, err := texttemplate.New(name).Funcs(templateFuncs).Option("missingkey=zero").Parse(parsed.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %w", ErrRenderFailed, name, err)
		}
		return &cachedTemplate{metadata: parsed.Metadata, body: body}, nil
	})
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	return cached(&r.mu, r.layouts, name, func() (*template.Template, error) {
		content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLayoutNotFound, name, err)
		}
		t, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: parse layout %s: %w", ErrRenderFailed, name, err)
		}
		return t, nil
	})
}

// cached returns m[key], loading and storing it on a miss. Failed loads are
// not cached.
func cached[T any](mu *sync.RWMutex, m map[string]T, key string, load func() (T, error)) (T, error) {
	mu.RLock()
	v, ok := m[key]
	mu.RUnlock()
	if ok {
		return v, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if v, ok := m[key]; ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	m[key] = v
	return v, nil
}
