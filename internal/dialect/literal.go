package dialect

import (
	"fmt"

	"github.com/goliatone/go-modelgen/internal/jsliteral"
)

// Literal converts a normalised descriptor value into a literal node.
// Integer kinds other than int64 appear after snapshot decoding.
func Literal(value any) (jsliteral.Value, error) {
	switch v := value.(type) {
	case nil:
		return jsliteral.Null{}, nil
	case string:
		return jsliteral.String(v), nil
	case bool:
		return jsliteral.Bool(v), nil
	case int:
		return jsliteral.Int(v), nil
	case int8:
		return jsliteral.Int(v), nil
	case int16:
		return jsliteral.Int(v), nil
	case int32:
		return jsliteral.Int(v), nil
	case int64:
		return jsliteral.Int(v), nil
	case uint8:
		return jsliteral.Int(v), nil
	case uint16:
		return jsliteral.Int(v), nil
	case uint32:
		return jsliteral.Int(v), nil
	case uint64:
		return jsliteral.Int(int64(v)), nil
	case float32:
		return jsliteral.Float(v), nil
	case float64:
		return jsliteral.Float(v), nil
	case []string:
		out := make(jsliteral.Array, 0, len(v))
		for _, item := range v {
			out = append(out, jsliteral.String(item))
		}
		return out, nil
	case []any:
		out := make(jsliteral.Array, 0, len(v))
		for _, item := range v {
			lit, err := Literal(item)
			if err != nil {
				return nil, err
			}
			out = append(out, lit)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported literal %T", value)
	}
}
