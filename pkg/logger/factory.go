package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents logger output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Deployment environments understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is the env representation of logger settings.
type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"json"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"authd"`
}

// Option configures logger creation.
type Option func(*options)

type options struct {
	level      slog.Leveler
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
	addSource  bool
}

// WithLevel sets the minimum level. The default is slog.LevelInfo.
func WithLevel(l slog.Leveler) Option {
	return func(o *options) {
		if l != nil {
			o.level = l
		}
	}
}

// WithFormat sets output format. Unknown formats panic so that a typo in
// bootstrap code stops the process instead of silently logging JSON.
func WithFormat(f Format) Option {
	return func(o *options) {
		switch f {
		case FormatJSON, FormatText:
			o.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithSource adds the caller position to every record.
func WithSource() Option {
	return func(o *options) { o.addSource = true }
}

// WithContextExtractors registers functions that add attributes from the
// logging context. Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		for _, ex := range extractors {
			if ex != nil {
				o.extractors = append(o.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name whenever it is set.
func WithContextValue(name string, key any) Option {
	return func(o *options) {
		if name == "" || key == nil {
			return
		}
		o.extractors = append(o.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithEnvironment applies the defaults of the named deployment environment
// and tags every record with service and env. Development logs text at
// debug level; staging and production log JSON at info level.
func WithEnvironment(env, service string) Option {
	return func(o *options) {
		switch strings.ToLower(env) {
		case EnvProduction, "prod":
			env = EnvProduction
			o.level = slog.LevelInfo
			o.format = FormatJSON
		case EnvStaging, "stage":
			env = EnvStaging
			o.level = slog.LevelInfo
			o.format = FormatJSON
		default:
			env = EnvDevelopment
			o.level = slog.LevelDebug
			o.format = FormatText
		}
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
		o.attrs = append(o.attrs, slog.String("env", env))
	}
}

// FromConfig translates Config into options. Explicit LOG_LEVEL and
// LOG_FORMAT values override the environment defaults.
func FromConfig(cfg Config) []Option {
	opts := []Option{WithEnvironment(cfg.Env, cfg.Service)}
	if lvl, ok := parseLevel(cfg.Level); ok {
		opts = append(opts, WithLevel(lvl))
	}
	switch Format(strings.ToLower(cfg.Format)) {
	case FormatJSON:
		opts = append(opts, WithFormat(FormatJSON))
	case FormatText:
		opts = append(opts, WithFormat(FormatText))
	}
	return opts
}

// New creates a configured slog.Logger. Defaults are JSON to stdout at info.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level, AddSource: o.addSource}

	var handler slog.Handler
	if o.format == FormatText {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	}
	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, o.extractors...))
}

// Discard returns a logger that drops every record. Useful as a default
// collaborator and in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseLevel(s string) (slog.Level, bool) {
	if s == "" {
		return 0, false
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, false
	}
	return lvl, true
}
