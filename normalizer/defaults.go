package normalizer

import (
	"fmt"
	"strconv"

	segjson "github.com/segmentio/encoding/json"
	"github.com/spf13/cast"

	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

// coerceDefault coerces a raw decoded default value to its declared type and
// renders the target-neutral literal the generators embed. The literal
// carries no language quoting; backends add their own based on the kind.
func coerceDefault(raw any, m typemap.Mapping) (value any, literal string, err error) {
	switch m.Kind {
	case typemap.KindString:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return nil, "", err
		}
		return s, s, nil

	case typemap.KindInteger:
		i, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, "", err
		}
		return i, strconv.FormatInt(i, 10), nil

	case typemap.KindNumber:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, "", err
		}
		return f, strconv.FormatFloat(f, 'g', -1, 64), nil

	case typemap.KindBoolean:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, "", err
		}
		return b, strconv.FormatBool(b), nil

	default:
		// Arrays and objects keep the decoded value; the literal is its JSON
		// encoding, which both target languages can restate.
		data, err := segjson.Marshal(raw)
		if err != nil {
			return nil, "", err
		}
		return raw, string(data), nil
	}
}

// stringifyEnum renders declared enum values as strings for tool input
// schemas.
func stringifyEnum(values []any) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("enum value %v: %w", v, err)
		}
		out = append(out, s)
	}
	return out, nil
}
