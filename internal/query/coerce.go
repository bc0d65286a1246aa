package query

import (
	"encoding/json"
	"strconv"
	"strings"
)

// toInt converts supported values to int64. Strings must hold a base
// 10 integer after trimming whitespace; floats truncate toward zero.
func toInt(value any) (int64, bool) {
	switch current := value.(type) {
	case bool:
		if current {
			return 1, true
		}
		return 0, true
	case int:
		return int64(current), true
	case int8:
		return int64(current), true
	case int16:
		return int64(current), true
	case int32:
		return int64(current), true
	case int64:
		return current, true
	case uint:
		return int64(current), true
	case uint8:
		return int64(current), true
	case uint16:
		return int64(current), true
	case uint32:
		return int64(current), true
	case uint64:
		return int64(current), true
	case float32:
		return int64(current), true
	case float64:
		return int64(current), true
	case json.Number:
		parsed, err := current.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(current), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// toString renders scalar values the way they appear in snapshot
// attributes.
func toString(value any) string {
	switch current := value.(type) {
	case string:
		return current
	case bool:
		return strconv.FormatBool(current)
	case int:
		return strconv.Itoa(current)
	case int64:
		return strconv.FormatInt(current, 10)
	case float64:
		return strconv.FormatFloat(current, 'f', -1, 64)
	case json.Number:
		return current.String()
	default:
		return formatFallback(current)
	}
}

func formatFallback(value any) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(payload)
}
