package metadata

import (
	"math/big"
	"strings"
	"time"
)

// Clock supplies the timestamp used when synthesizing date/time values.
// Injectable so callers get deterministic synthesis.
type Clock func() time.Time

// InitialValue resolves a starting value for the field using the priority
// chain: configured default, first example, then a type-driven synthesized
// value. Date/time synthesis uses the wall clock; use InitialValueAt to pin
// it.
func (f Field) InitialValue() any {
	return f.InitialValueAt(time.Now)
}

// InitialValueAt is InitialValue with an explicit clock.
func (f Field) InitialValueAt(clock Clock) any {
	if value, ok := f.Default.Get(); ok {
		return value
	}
	if len(f.Examples) > 0 {
		return f.Examples[0]
	}
	if clock == nil {
		clock = time.Now
	}
	return f.synthesize(f.Type, clock)
}

func (f Field) synthesize(t Type, clock Clock) any {
	switch t.Kind {
	case KindLiteral:
		if len(t.Literals) > 0 {
			return t.Literals[0]
		}
		return nil
	case KindUnion:
		// A union that carried only null has no branches left.
		if len(t.Elems) == 0 {
			return nil
		}
		return f.synthesize(t.Elems[0], clock)
	case KindList, KindSet, KindTuple:
		return []any{}
	case KindMap:
		return map[string]any{}
	default:
		return f.synthesizePrimitive(t, clock)
	}
}

func (f Field) synthesizePrimitive(t Type, clock Clock) any {
	c := f.Constraints
	switch t.Kind {
	case KindString:
		if c.MinLength != nil && *c.MinLength > 0 {
			return strings.Repeat(" ", *c.MinLength)
		}
		return ""
	case KindInteger:
		if c.MinValue != nil && *c.MinValue > 0 {
			return int(*c.MinValue)
		}
		return 0
	case KindFloat:
		if c.MinValue != nil && *c.MinValue > 0 {
			return *c.MinValue
		}
		return 0.0
	case KindBoolean:
		return false
	case KindDecimal:
		if c.MinValue != nil && *c.MinValue > 0 {
			return big.NewFloat(*c.MinValue)
		}
		return big.NewFloat(0)
	case KindDate, KindDateTime, KindTime:
		return clock()
	case KindEnum:
		if len(t.Members) > 0 {
			return t.Members[0]
		}
		return nil
	case KindModel:
		if t.New != nil {
			instance, err := t.New()
			if err != nil {
				return nil
			}
			return instance
		}
		return nil
	default:
		return nil
	}
}
