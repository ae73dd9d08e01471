package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one raw association read from an input: a row-entity value and a
// column-entity value. Depending on the source, values arrive as string,
// []byte, int64, float64, or nil.
type Record struct {
	Row any
	Col any
}

// RecordSource streams records from an input. Next returns io.EOF after the
// last record. Sources are single-use; Close releases the underlying handle.
type RecordSource interface {
	Next() (Record, error)
	Close() error
}

// Canonical converts a raw field value to its canonical label. The second
// return is false when the value is missing: nil, NaN, or a string that is
// empty after trimming. Numeric values render minimally, so int64(1001),
// float64(1001) and "1001" all collapse to the label "1001", while the
// string "1001.0" stays distinct.
func Canonical(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case []byte:
		s := strings.TrimSpace(string(x))
		return s, s != ""
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		s := strings.TrimSpace(fmt.Sprint(x))
		return s, s != ""
	}
}
