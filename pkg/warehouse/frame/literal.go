package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/frame/colmap"
)

const timestampLayout = "2006-01-02 15:04:05.999999999"

func renderLiteral(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if t {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(t), 10), nil
	case int8:
		return strconv.FormatInt(int64(t), 10), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return renderFloat(float64(t))
	case float64:
		return renderFloat(t)
	case string:
		s := strings.ReplaceAll(t, `\`, `\\`)
		return "'" + strings.ReplaceAll(s, "'", "''") + "'", nil
	case time.Time:
		return "'" + t.UTC().Format(timestampLayout) + "'", nil
	}
	return "", fmt.Errorf("unsupported literal %v of type %T", v, v)
}

func renderFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported float literal %v", f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// renderCell : a VALUES cell cast to the column's snowflake type
func renderCell(v any, k Kind) (string, error) {
	lit, err := renderLiteral(v)
	if err != nil {
		return "", err
	}
	typ, err := colmap.Convert(colmap.FrameToSnowflake, string(k))
	if err != nil {
		return "", err
	}
	return lit + "::" + typ, nil
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
