package index

import "context"

// ExportVersion tags the schema of ExportState's blob.
const ExportVersion = "1"

// ExportState is the offline-audit snapshot produced by ExportState: every
// tracked KEL/TEL's structured entries plus both directions of every
// tracked alias scope.
type ExportState struct {
	Version     string                       `json:"version"`
	GeneratedAt string                       `json:"generatedAt"`
	Kels        map[string][]KELEntry        `json:"kels"`
	Tels        map[string][]TELEntry        `json:"tels"`
	AliasByID   map[string]map[string]string `json:"aliasById"`
	IDsByAlias  map[string]map[string]string `json:"idsByAlias"`
}

// ExportState folds the named AIDs/registries and alias scopes into one
// auditable snapshot. generatedAt is supplied by the caller since pure
// computations in this core never read the wall clock themselves.
func (idx *Indexer) ExportState(ctx context.Context, aids, registries, scopes []string, generatedAt string) (ExportState, error) {
	out := ExportState{
		Version:     ExportVersion,
		GeneratedAt: generatedAt,
		Kels:        make(map[string][]KELEntry),
		Tels:        make(map[string][]TELEntry),
		AliasByID:   make(map[string]map[string]string),
		IDsByAlias:  make(map[string]map[string]string),
	}

	for _, aid := range aids {
		entries, err := idx.loadKelEntries(ctx, aid)
		if err != nil {
			return ExportState{}, err
		}
		out.Kels[aid] = entries
	}
	for _, ri := range registries {
		entries, err := idx.loadTelEntries(ctx, ri)
		if err != nil {
			return ExportState{}, err
		}
		out.Tels[ri] = entries
	}
	for _, scope := range scopes {
		idsByAlias, err := idx.store.ListAliases(ctx, scope)
		if err != nil {
			return ExportState{}, err
		}
		out.IDsByAlias[scope] = idsByAlias
		aliasByID := make(map[string]string, len(idsByAlias))
		for alias, id := range idsByAlias {
			aliasByID[id] = alias
		}
		out.AliasByID[scope] = aliasByID
	}

	return out, nil
}
