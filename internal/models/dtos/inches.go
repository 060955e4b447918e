package dtos

import "encoding/json"

// Inches is a snowfall or depth measurement that distinguishes "zero" from
// "no data". Unknown values encode as JSON null so callers never have to
// guess what a 0 means.
type Inches struct {
	Value float64
	Known bool
}

func KnownInches(v float64) Inches {
	return Inches{Value: v, Known: true}
}

func UnknownInches() Inches {
	return Inches{}
}

// InchesFromPtr maps a nullable stored column onto the explicit variant.
func InchesFromPtr(v *float64) Inches {
	if v == nil {
		return Inches{}
	}
	return Inches{Value: *v, Known: true}
}

// InchesFromIntPtr is InchesFromPtr for integer depth columns.
func InchesFromIntPtr(v *int) Inches {
	if v == nil {
		return Inches{}
	}
	return Inches{Value: float64(*v), Known: true}
}

func (i Inches) MarshalJSON() ([]byte, error) {
	if !i.Known {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

func (i *Inches) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Inches{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = Inches{Value: v, Known: true}
	return nil
}
