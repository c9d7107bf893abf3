package keri

import "strconv"

// ParseTholderValue builds a Tholder from a decoded "kt"/"nt" field value:
// a hex-digit string for a numeric threshold, a flat string array for a
// single weighted clause, or a nested array-of-arrays for multiple clauses.
func ParseTholderValue(v any) (Tholder, error) {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseInt(t, 16, 64)
		if err != nil {
			return Tholder{}, ErrInvalidThreshold
		}
		return NewNumericTholder(int(n)), nil
	case []any:
		if len(t) == 0 {
			return NewWeightedTholder(nil), nil
		}
		if _, ok := t[0].([]any); ok {
			clauses := make([][]string, len(t))
			for i, c := range t {
				clause, ok := c.([]any)
				if !ok {
					return Tholder{}, ErrInvalidThreshold
				}
				clauses[i] = make([]string, len(clause))
				for j, f := range clause {
					s, ok := f.(string)
					if !ok {
						return Tholder{}, ErrInvalidThreshold
					}
					clauses[i][j] = s
				}
			}
			return NewWeightedTholder(clauses), nil
		}
		clause := make([]string, len(t))
		for i, f := range t {
			s, ok := f.(string)
			if !ok {
				return Tholder{}, ErrInvalidThreshold
			}
			clause[i] = s
		}
		return NewWeightedTholder([][]string{clause}), nil
	default:
		return Tholder{}, ErrInvalidThreshold
	}
}
