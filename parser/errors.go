// Package parser splits a raw CESR-framed event stream into its JSON
// event body, a projected metadata view, and any trailing signature
// attachment group, and classifies events as KEL or TEL for indexing.
package parser

import "errors"

var (
	ErrNoJSONStart  = errors.New("parser: no JSON object start found in stream")
	ErrMalformedEvent = errors.New("parser: event body failed to parse as JSON")
	ErrUnknownKind  = errors.New("parser: event type is neither a KEL nor TEL type")
)
