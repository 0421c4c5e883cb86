package genderrender

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/phseiff/gender-render/pkg/genderrender/nouns"
)

// TemplateExtension is the usual extension of template files.
const TemplateExtension = ".gr"

// Engine parses and renders templates. It is safe for concurrent use.
// Use New() to create a new engine instance.
type Engine struct {
	config      *Config
	cache       *TemplateCache
	logger      *Logger
	diagnostics DiagnosticSettings
	// diagnosticsSet is true when WithDiagnostics overrode the configured settings.
	diagnosticsSet bool
	// cacheSize overrides the configured cache size when set by WithCache.
	cacheSize *int

	nouns     NounLookup
	nounsOnce sync.Once
	nounsErr  error
}

// New creates a new engine with the global configuration.
func New() *Engine {
	return NewWithConfig(GetGlobalConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(config *Config) *Engine {
	return NewWithOptions(WithConfig(config))
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = NewConfigWithDefaults(config)
	}
}

// WithCache returns an option that sets the cache size (0 disables caching).
// It takes precedence over the cache size of any configuration option.
func WithCache(maxSize int) Option {
	return func(e *Engine) {
		e.cacheSize = &maxSize
	}
}

// WithNouns returns an option that replaces the noun dataset.
func WithNouns(lookup NounLookup) Option {
	return func(e *Engine) {
		e.nouns = lookup
	}
}

// WithDiagnostics returns an option that sets the default diagnostic settings of every call.
func WithDiagnostics(settings DiagnosticSettings) Option {
	return func(e *Engine) {
		e.diagnostics = settings
		e.diagnosticsSet = true
	}
}

// WithLogger returns an option that sets the engine logger.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewWithOptions creates a new engine with the specified options.
func NewWithOptions(opts ...Option) *Engine {
	e := &Engine{config: GetGlobalConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = GetLogger()
	}
	if e.cacheSize != nil {
		config := NewConfigWithDefaults(e.config)
		config.CacheMaxSize = *e.cacheSize
		e.config = config
	}
	if e.cache == nil {
		e.cache = NewTemplateCacheWithConfig(CacheConfig{
			MaxSize: e.config.CacheMaxSize,
			TTL:     e.config.CacheTTL,
		})
	}
	if !e.diagnosticsSet {
		e.diagnostics = e.config.diagnosticSettings()
	}
	if e.diagnostics.Handler == nil {
		e.diagnostics = e.diagnostics.WithHandler(LogDiagnostics(e.logger))
	}
	return e
}

// RenderOption adjusts a single Parse or Render call.
type RenderOption func(*callOptions)

type callOptions struct {
	diagnostics DiagnosticSettings
}

// UseDiagnostics replaces the engine's diagnostic settings for one call.
func UseDiagnostics(settings DiagnosticSettings) RenderOption {
	return func(o *callOptions) {
		o.diagnostics = settings
	}
}

// UseDiagnosticHandler sends the diagnostics of one call to h, keeping the enabled kinds.
func UseDiagnosticHandler(h DiagnosticHandler) RenderOption {
	return func(o *callOptions) {
		o.diagnostics = o.diagnostics.WithHandler(h)
	}
}

func (e *Engine) callOptions(opts []RenderOption) callOptions {
	o := callOptions{diagnostics: e.diagnostics}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Nouns returns the noun dataset, loading it on first use.
func (e *Engine) Nouns() (NounLookup, error) {
	e.nounsOnce.Do(func() {
		if e.nouns != nil {
			return
		}
		if e.config.NounDataPath == "" {
			e.nouns = nouns.Default()
			return
		}
		d, err := nouns.LoadFile(context.Background(), e.config.NounDataPath)
		if err != nil {
			e.nounsErr = WithContext(err, "load noun data", map[string]interface{}{"path": e.config.NounDataPath})
			return
		}
		e.logger.WithFields(Fields{"path": e.config.NounDataPath, "words": d.Len()}).Debug("Loaded noun data")
		e.nouns = d
	})
	return e.nouns, e.nounsErr
}

// Parse parses a template. Templates are cached by content when caching is enabled.
func (e *Engine) Parse(source string, opts ...RenderOption) (*Template, error) {
	o := e.callOptions(opts)
	key := CacheKey(source)

	if tmpl, ok := e.cache.Get(key); ok {
		if e.logger.IsDebugMode() {
			e.logger.WithField("key", key[:16]).Debug("Template cache hit")
		}
		tmpl.replayDiagnostics(o.diagnostics)
		return tmpl, nil
	}

	lookup, err := e.Nouns()
	if err != nil {
		return nil, err
	}
	tmpl, err := prepareTemplate(source, lookup, e.logger)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, tmpl)
	tmpl.replayDiagnostics(o.diagnostics)
	return tmpl, nil
}

// ParseFile reads and parses a template file.
func (e *Engine) ParseFile(path string, opts ...RenderOption) (*Template, error) {
	o := e.callOptions(opts)
	if !strings.EqualFold(filepath.Ext(path), TemplateExtension) {
		o.diagnostics.emit(UnexpectedFileFormat, "%s does not end in %s; reading it as a template anyway",
			path, TemplateExtension)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WithContext(err, "read template", map[string]interface{}{"path": path})
	}
	tmpl, err := e.Parse(string(data), UseDiagnostics(o.diagnostics))
	if err != nil {
		return nil, WithContext(err, "parse template", map[string]interface{}{"path": path})
	}
	return tmpl, nil
}

// LoadPronounData reads a pronoun data file with the engine's diagnostic settings.
func (e *Engine) LoadPronounData(path string, opts ...RenderOption) (PronounData, error) {
	return LoadPronounDataFile(path, e.callOptions(opts).diagnostics)
}

// Render renders t for the people described by pd. Attribute names in pd may use any
// accepted spelling; they are canonicalized and checked like NewPronounData does.
// pd is not modified.
func (e *Engine) Render(t *Template, pd PronounData, opts ...RenderOption) (string, error) {
	o := e.callOptions(opts)
	logger := e.logger.WithField("render_id", uuid.NewString())
	if logger.IsDebugMode() {
		logger.WithFields(Fields{
			"tags":         len(t.refined.Tags),
			"template_ids": t.UsedIDs(),
			"pronoun_ids":  pd.IDs(),
		}).Debug("Rendering template")
	}

	pd, err := pd.canonical(o.diagnostics)
	if err != nil {
		return "", err
	}
	resolved, resolvedPD, err := resolveIDs(t.refined, pd, o.diagnostics)
	if err != nil {
		return "", err
	}
	resolved = resolveAddresses(resolved, resolvedPD, o.diagnostics)

	out, err := renderTemplate(resolved, resolvedPD, o.diagnostics)
	if err != nil {
		return "", err
	}
	if logger.IsDebugMode() {
		logger.WithField("length", len(out)).Debug("Rendered template")
	}
	return out, nil
}

// RenderString parses source and renders it in one step.
func (e *Engine) RenderString(source string, pd PronounData, opts ...RenderOption) (string, error) {
	t, err := e.Parse(source, opts...)
	if err != nil {
		return "", err
	}
	return e.Render(t, pd, opts...)
}

// RenderBatch renders t once per pronoun data record, concurrently. Results are in the
// order of pds. The first error cancels the remaining renders and is returned.
func (e *Engine) RenderBatch(ctx context.Context, t *Template, pds []PronounData, opts ...RenderOption) ([]string, error) {
	results := make([]string, len(pds))
	g, ctx := errgroup.WithContext(ctx)
	if e.config.MaxParallelRenders > 0 {
		g.SetLimit(e.config.MaxParallelRenders)
	}

	for i, pd := range pds {
		i, pd := i, pd
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := e.Render(t, pd, opts...)
			if err != nil {
				return fmt.Errorf("pronoun data %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ClearCache removes all templates from the cache.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// Close releases the cache and flushes the logger.
func (e *Engine) Close() error {
	e.cache.Clear()
	_ = e.logger.Sync()
	return nil
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine returns the engine behind the package-level functions.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// ParseTemplate parses a template with the default engine.
func ParseTemplate(source string) (*Template, error) {
	return DefaultEngine().Parse(source)
}

// Render renders a parsed template with the default engine.
func Render(t *Template, pd PronounData) (string, error) {
	return DefaultEngine().Render(t, pd)
}

// RenderTemplate parses and renders source with the default engine.
func RenderTemplate(source string, pd PronounData) (string, error) {
	return DefaultEngine().RenderString(source, pd)
}
