// package colmap
//
// maps frame column kinds to snowflake column types
package colmap

import (
	"fmt"
	"strings"
)

// Type : column mapping type
type Type string

const (
	// FrameToSnowflake : frame kind -> snowflake type casting
	FrameToSnowflake Type = "FRAME_SNOWFLAKE"
)

var (
	frameToSnowflakeMap = map[string]string{
		"INTEGER":   "NUMBER(38,0)",
		"FLOAT":     "FLOAT",
		"STRING":    "VARCHAR",
		"BOOLEAN":   "BOOLEAN",
		"TIMESTAMP": "TIMESTAMP_NTZ",
	}
)

// Convert : converts kinds to the target db if it cannot then it will error out
func Convert(t Type, kind string) (string, error) {
	kind = strings.ToUpper(strings.TrimSpace(kind))
	switch t {
	case FrameToSnowflake:
		itm, ok := frameToSnowflakeMap[kind]
		if !ok {
			return "", fmt.Errorf("This kind %s does not have a snowflake mapping", kind)
		}
		return itm, nil
	}
	return "", fmt.Errorf("Unsupported type %s", t)
}

// MustConvert : if the conversion errors out it panics
func MustConvert(t Type, kind string) string {
	val, err := Convert(t, kind)
	if err != nil {
		panic(fmt.Errorf("%s : Could not cast %s : %w", t, kind, err))
	}
	return val
}
