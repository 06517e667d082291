package salt

import "strconv"

type ValueKind int

const (
	KindUnit ValueKind = iota
	KindBoolean
	KindInteger
)

func (k ValueKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a unit, boolean or integer. Values are plain data and are always
// passed by value.
type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
}

var Unit = Value{Kind: KindUnit}

func Boolean(b bool) Value {
	return Value{Kind: KindBoolean, Bool: b}
}

func Integer(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

// String renders the value the way print writes it.
func (v Value) String() string {
	switch v.Kind {
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	default:
		return "()"
	}
}
