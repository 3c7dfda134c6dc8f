package cache

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"nosqlkit.app/pkg/errors"
)

// Decoder reinterprets the raw bytes of a cache entry
type Decoder func(raw []byte) (interface{}, error)

// DecodeBytes returns the raw bytes unchanged
func DecodeBytes(raw []byte) (interface{}, error) {
	return raw, nil
}

// DecodeString decodes the bytes as UTF-8 text
func DecodeString(raw []byte) (interface{}, error) {
	if !utf8.Valid(raw) {
		return nil, errors.NewDecodeError("value is not valid UTF-8", nil)
	}
	return string(raw), nil
}

// DecodeInt parses the bytes as a base-10 integer
func DecodeInt(raw []byte) (interface{}, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return nil, errors.NewDecodeError("value is not an integer", err)
	}
	return n, nil
}

// DecodeFloat parses the bytes as a floating point number
func DecodeFloat(raw []byte) (interface{}, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return nil, errors.NewDecodeError("value is not a number", err)
	}
	return f, nil
}

// encodeValue renders a supported value the way Redis stores it
func encodeValue(data interface{}) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case int:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case int8:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return []byte(strconv.FormatInt(v, 10)), nil
	case uint:
		return []byte(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return []byte(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return []byte(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return []byte(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return []byte(strconv.FormatUint(v, 10)), nil
	case float32:
		return []byte(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case bool:
		if v {
			return []byte("1"), nil
		}
		return []byte("0"), nil
	case nil:
		return nil, errors.NewValidationError("cannot store a nil value")
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported value type %T", data))
	}
}
