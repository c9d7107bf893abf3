package store

import (
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/datatrails/go-datatrails-keri/cesr"
	"github.com/datatrails/go-datatrails-keri/parser"
)

// Clock supplies timestamps for the TEL index, decoupled from wall-clock
// time so tests can be deterministic.
type Clock interface {
	Now() string // ISO-8601
}

type systemClock struct{}

func (systemClock) Now() string { return time.Now().UTC().Format(time.RFC3339) }

// Encoding selects how raw event bytes are stored.
type Encoding int

const (
	EncodingText Encoding = iota
	EncodingBinary
)

// Options configures a Store's injectable collaborators.
type Options struct {
	DefaultEncoding Encoding
	Clock           Clock
	HasherCode      string
	Parse           func([]byte) (parser.Parsed, error)
	Log             logger.Logger
}

// Option mutates an Options bundle under construction.
type Option func(*Options)

// WithDefaultEncoding selects binary or text storage of raw event bytes.
func WithDefaultEncoding(enc Encoding) Option {
	return func(o *Options) { o.DefaultEncoding = enc }
}

// WithClock injects a timestamp source for the TEL index.
func WithClock(c Clock) Option {
	return func(o *Options) { o.Clock = c }
}

// WithHasherCode sets Options.HasherCode, the SAID digest code recorded for
// the store (default Blake3-256). PutEvent does not verify event SAIDs, so
// the code does not affect what the store accepts.
func WithHasherCode(code string) Option {
	return func(o *Options) { o.HasherCode = code }
}

// WithParser injects the CESR/JSON parser, defaulting to parser.Parse.
func WithParser(p func([]byte) (parser.Parsed, error)) Option {
	return func(o *Options) { o.Parse = p }
}

// WithLogger injects a structured logger; nil (the default) means no
// logging.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.Log = log }
}

func defaultOptions() Options {
	return Options{
		DefaultEncoding: EncodingText,
		Clock:           systemClock{},
		HasherCode:      cesr.CodeBlake3_256,
		Parse:           parser.Parse,
	}
}
