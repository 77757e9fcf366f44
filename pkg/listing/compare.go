package listing

import (
	"cmp"
	"encoding/json"
	"time"

	"github.com/spf13/cast"
)

type kind int

// Mixed-kind fields order numbers first, then times, booleans and strings.
const (
	kindNumber kind = iota
	kindTime
	kindBool
	kindString
)

type sortKey struct {
	kind kind
	num  float64
	at   time.Time
	flag bool
	text string
}

func keyOf(v any) sortKey {
	switch t := v.(type) {
	case nil:
		return sortKey{kind: kindString}
	case string:
		return sortKey{kind: kindString, text: t}
	case bool:
		return sortKey{kind: kindBool, flag: t}
	case time.Time:
		return sortKey{kind: kindTime, at: t}
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return sortKey{kind: kindNumber, num: f}
		}
		return sortKey{kind: kindString, text: t.String()}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return sortKey{kind: kindNumber, num: cast.ToFloat64(t)}
	}
	return sortKey{kind: kindString, text: cast.ToString(v)}
}

// compare orders two field values. Strings use locale collation.
func (c *Controller[T]) compare(a, b any) int {
	ka, kb := keyOf(a), keyOf(b)
	if ka.kind != kb.kind {
		return cmp.Compare(ka.kind, kb.kind)
	}

	switch ka.kind {
	case kindNumber:
		return cmp.Compare(ka.num, kb.num)
	case kindTime:
		return ka.at.Compare(kb.at)
	case kindBool:
		switch {
		case ka.flag == kb.flag:
			return 0
		case !ka.flag:
			return -1
		default:
			return 1
		}
	}
	return c.collator.CompareString(ka.text, kb.text)
}
