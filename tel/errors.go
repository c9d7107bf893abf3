// Package tel builds Transaction Event Log events: registry inception
// (vcp), credential issuance (iss) and revocation (rev), and registry
// interactions (ixn) that anchor nested registries.
package tel

import "errors"

var (
	ErrMissingIssuer  = errors.New("tel: registry inception requires an issuer AID")
	ErrMissingVcdig   = errors.New("tel: issue/revoke requires a credential SAID")
	ErrMissingRegistry = errors.New("tel: issue/revoke requires a registry SAID")
	ErrMissingPrior   = errors.New("tel: revoke requires the prior iss event's SAID")
)
