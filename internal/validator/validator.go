package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/ports"
)

// ErrNotArray is returned when a persisted collection is not a JSON array.
var ErrNotArray = errors.New("validator: collection is not a JSON array")

// FieldProblem is one per-field diagnostic.
type FieldProblem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Result is the tagged outcome of validating one charm record.
type Result struct {
	Valid    bool
	Charm    domain.Charm
	Problems []FieldProblem
}

func (r Result) OK() bool            { return r.Valid }
func (r Result) Value() domain.Charm { return r.Charm }

// Diagnostic renders the problems on one line, empty for a valid record.
func (r Result) Diagnostic() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Problems))
	for _, p := range r.Problems {
		parts = append(parts, p.Field+": "+p.Reason)
	}
	return strings.Join(parts, "; ")
}

// CharmValidator checks persisted charm records structurally.
type CharmValidator struct{}

func New() *CharmValidator { return &CharmValidator{} }

var _ ports.CharmValidator = (*CharmValidator)(nil)

// ValidateCharm implements ports.CharmValidator.
func (v *CharmValidator) ValidateCharm(raw json.RawMessage) ports.CharmValidation {
	return v.Check(raw)
}

// Check validates one raw record and returns the concrete Result.
func (v *CharmValidator) Check(raw json.RawMessage) Result {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Result{Problems: []FieldProblem{{Field: "record", Reason: "not a JSON object"}}}
	}

	var res Result
	str := func(name string, dst *string) {
		rv, ok := fields[name]
		if !ok {
			res.Problems = append(res.Problems, FieldProblem{name, "missing"})
			return
		}
		if isNull(rv) {
			res.Problems = append(res.Problems, FieldProblem{name, "not a string"})
			return
		}
		if err := json.Unmarshal(rv, dst); err != nil {
			res.Problems = append(res.Problems, FieldProblem{name, "not a string"})
		}
	}
	color := func(name string, dst *string) {
		rv, ok := fields[name]
		if !ok || isNull(rv) {
			return
		}
		if err := json.Unmarshal(rv, dst); err != nil {
			res.Problems = append(res.Problems, FieldProblem{name, "not a string"})
			return
		}
		if !IsSafeColor(*dst) {
			res.Problems = append(res.Problems, FieldProblem{name, fmt.Sprintf("unsafe color %q", *dst)})
		}
	}

	c := &res.Charm
	str("id", &c.ID)
	str("name", &c.Name)
	str("icon", &c.Icon)
	str("power", &c.Power)
	if rv, ok := fields["points"]; !ok {
		res.Problems = append(res.Problems, FieldProblem{"points", "missing"})
	} else if err := json.Unmarshal(rv, &c.Points); err != nil || isNull(rv) {
		res.Problems = append(res.Problems, FieldProblem{"points", "not a number"})
	} else if c.Points < 0 {
		res.Problems = append(res.Problems, FieldProblem{"points", "negative"})
	}
	color("iconBgColor", &c.IconBgColor)
	color("iconColor", &c.IconColor)

	res.Valid = len(res.Problems) == 0
	if !res.Valid {
		res.Charm = domain.Charm{}
	}
	return res
}

// ValidateCharms decodes a persisted collection and keeps only the records
// that pass Check. The returned results cover every input record in order.
func (v *CharmValidator) ValidateCharms(data []byte) ([]domain.Charm, []Result, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if raws == nil {
		return nil, nil, ErrNotArray
	}
	out := make([]domain.Charm, 0, len(raws))
	results := make([]Result, 0, len(raws))
	for _, raw := range raws {
		r := v.Check(raw)
		results = append(results, r)
		if r.Valid {
			out = append(out, r.Charm)
		}
	}
	return out, results, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
