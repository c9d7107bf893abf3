// Package graph builds a node/edge view of a store's KEL, TEL, and ACDC
// content for inspection and audit tooling. It never derives trust
// decisions: it only enumerates what replay and the indexer have already
// accepted.
package graph

import "errors"

var ErrNoScope = errors.New("graph: at least one AID or registry must be named")
