// Package logger holds the process-wide zerolog logger.
//
// Init builds it once from configuration; Get and Component hand it out.
// Bootstrap covers the window before configuration is available.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else is info.
	Level string
	// Pretty switches to coloured console output for local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service and Env are stamped on every entry when set.
	Service string
	Env     string
}

var (
	mu          sync.RWMutex
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the shared logger. Later calls return the first logger
// unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		l := build(writer(opts.Output, opts.Pretty), lvl, opts.Service, opts.Env)

		mu.Lock()
		instance = l
		initialized = true
		mu.Unlock()
	})
	return Get()
}

// Bootstrap returns a JSON logger on stderr for failures that happen before
// Init, such as an unreadable configuration. It does not touch the shared
// logger.
func Bootstrap(service string) zerolog.Logger {
	return build(os.Stderr, zerolog.InfoLevel, service, "")
}

// Get returns the shared logger. It panics if Init has not run.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// Component returns a child of the shared logger tagged with the subsystem
// name, e.g. "auth" or "scheduler".
func Component(name string) zerolog.Logger {
	l := Get()
	return l.With().Str("component", name).Logger()
}

// Reset clears the shared logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

func writer(out io.Writer, pretty bool) io.Writer {
	if out == nil {
		out = os.Stdout
	}
	if pretty {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return out
}

func build(out io.Writer, lvl zerolog.Level, service, env string) zerolog.Logger {
	ctx := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	if env != "" {
		ctx = ctx.Str("env", env)
	}
	return ctx.Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
