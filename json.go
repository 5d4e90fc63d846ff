package fixbv

import (
	"encoding/json"
	"math/big"

	"github.com/zeebo/errs"
)

type valueJSON struct {
	SI    *big.Int `json:"si"`
	Shift *big.Int `json:"shift"`
	Min   *big.Int `json:"min,omitempty"`
	Max   *big.Int `json:"max,omitempty"`
}

// MarshalJSON encodes the value as an object with integer fields, like
// {"si":11,"shift":-3,"min":-16,"max":16}. Bounds are omitted for
// unbounded values.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueJSON{SI: &v.si, Shift: &v.shift, Min: v.min, Max: v.max})
}

// UnmarshalJSON decodes the object form produced by MarshalJSON.
// Bounds go through the same validation as NewWithBounds, so a decoded
// value upholds the bounds invariant or the decode fails.
func (v *Value) UnmarshalJSON(data []byte) error {
	var d valueJSON
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	if d.SI == nil || d.Shift == nil {
		return errs.New("si and shift are required")
	}
	res, err := fromParts(d.SI, d.Shift).WithBounds(d.Min, d.Max)
	if err != nil {
		return err
	}
	*v = *res
	return nil
}
