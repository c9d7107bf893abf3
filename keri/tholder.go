package keri

import (
	"encoding/json"
	"math/big"
	"strconv"
)

// Tholder represents a signing threshold, either a plain numeric count or a
// weighted list of fractional clauses ("1/2", "1/3", ...). Exactly one of
// Numeric or Weighted is set.
type Tholder struct {
	Numeric  *int
	Weighted [][]string
}

// NewNumericTholder builds a numeric threshold.
func NewNumericTholder(n int) Tholder {
	return Tholder{Numeric: &n}
}

// NewWeightedTholder builds a weighted threshold from clauses of rational
// strings, e.g. [["1/2","1/2"],["1/1"]].
func NewWeightedTholder(clauses [][]string) Tholder {
	return Tholder{Weighted: clauses}
}

// Size reports the number of keys this threshold expects: the numeric value
// itself for Numeric, or the flattened clause count for Weighted.
func (t Tholder) Size() int {
	if t.Numeric != nil {
		return *t.Numeric
	}
	n := 0
	for _, clause := range t.Weighted {
		n += len(clause)
	}
	return n
}

// Validate asserts the threshold is satisfiable by n keys: a numeric
// threshold must not exceed n, and every weighted clause's fractional sum
// must be at least 1.
func (t Tholder) Validate(n int) error {
	if t.Numeric != nil {
		if *t.Numeric <= 0 {
			return ErrInvalidThreshold
		}
		if *t.Numeric > n {
			return ErrThresholdExceedsKeys
		}
		return nil
	}
	if len(t.Weighted) == 0 {
		return ErrInvalidThreshold
	}
	total := 0
	for _, clause := range t.Weighted {
		sum := new(big.Rat)
		for _, frac := range clause {
			r, err := parseRat(frac)
			if err != nil {
				return err
			}
			sum.Add(sum, r)
			total++
		}
		if sum.Cmp(big.NewRat(1, 1)) < 0 {
			return ErrWeightedSumTooLow
		}
	}
	if total > n {
		return ErrThresholdExceedsKeys
	}
	return nil
}

// Satisfied reports whether signingIndices (the set of verified signer
// positions) satisfies t given a flat key list of length n.
func (t Tholder) Satisfied(n int, signingIndices map[int]bool) bool {
	if t.Numeric != nil {
		count := 0
		for i := 0; i < n; i++ {
			if signingIndices[i] {
				count++
			}
		}
		return count >= *t.Numeric
	}
	return t.satisfiedByClause(signingIndices)
}

// satisfiedByClause walks clauses tracking the absolute key index so each
// weight is only counted when its own index actually signed.
func (t Tholder) satisfiedByClause(signingIndices map[int]bool) bool {
	idx := 0
	for _, clause := range t.Weighted {
		sum := new(big.Rat)
		for _, frac := range clause {
			if signingIndices[idx] {
				r, err := parseRat(frac)
				if err == nil {
					sum.Add(sum, r)
				}
			}
			idx++
		}
		if sum.Cmp(big.NewRat(1, 1)) < 0 {
			return false
		}
	}
	return true
}

// String renders the threshold for display: a lowercase hex digit for
// Numeric, or the clause list as JSON for Weighted.
func (t Tholder) String() string {
	if t.Numeric != nil {
		return strconv.FormatInt(int64(*t.Numeric), 16)
	}
	b, err := json.Marshal(t.Weighted)
	if err != nil {
		return ""
	}
	return string(b)
}

// Value returns the threshold in the form "kt"/"nt" must hold on the
// wire: the hex string for Numeric, or the nested clause arrays
// (unwrapped to []any so encoding/json emits a real JSON array) for
// Weighted. Event builders must use Value, not String, when setting a
// "kt"/"nt" field: ParseTholderValue only ever decodes a string or a
// []any, never a JSON-text string holding an array.
func (t Tholder) Value() any {
	if t.Numeric != nil {
		return t.String()
	}
	clauses := make([]any, len(t.Weighted))
	for i, clause := range t.Weighted {
		c := make([]any, len(clause))
		for j, f := range clause {
			c[j] = f
		}
		clauses[i] = c
	}
	return clauses
}

func parseRat(s string) (*big.Rat, error) {
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return nil, ErrInvalidThreshold
	}
	return r, nil
}
