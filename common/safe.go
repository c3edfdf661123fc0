package common

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SafeValue 按候选键顺序取第一个存在且非nil的值
func SafeValue(data map[string]interface{}, keys ...string) interface{} {
	if data == nil {
		return nil
	}
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// SafeString 取字符串值，数值自动转为字符串
func SafeString(data map[string]interface{}, keys ...string) string {
	v := SafeValue(data, keys...)
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// SafeStringLower 取字符串值并转小写
func SafeStringLower(data map[string]interface{}, keys ...string) string {
	return strings.ToLower(SafeString(data, keys...))
}

// SafeStringUpper 取字符串值并转大写
func SafeStringUpper(data map[string]interface{}, keys ...string) string {
	return strings.ToUpper(SafeString(data, keys...))
}

// SafeFloat 取浮点值，数值字符串自动解析；缺失或不可解析时返回nil
func SafeFloat(data map[string]interface{}, keys ...string) *float64 {
	v := SafeValue(data, keys...)
	return toFloat(v)
}

func toFloat(v interface{}) *float64 {
	if v == nil {
		return nil
	}
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case int64:
		f = float64(val)
	case int:
		f = float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

// SafeFloatValue 取浮点值，缺失时返回0
func SafeFloatValue(data map[string]interface{}, keys ...string) float64 {
	if f := SafeFloat(data, keys...); f != nil {
		return *f
	}
	return 0
}

// SafeInteger 取整数值，浮点和数值字符串向零截断；缺失时返回nil
func SafeInteger(data map[string]interface{}, keys ...string) *int64 {
	f := SafeFloat(data, keys...)
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// SafeIntegerValue 取整数值，缺失时返回0
func SafeIntegerValue(data map[string]interface{}, keys ...string) int64 {
	if i := SafeInteger(data, keys...); i != nil {
		return *i
	}
	return 0
}

// SafeBool 取布尔值，缺失时返回默认值
func SafeBool(data map[string]interface{}, key string, defaultValue bool) bool {
	v := SafeValue(data, key)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// SafeMap 取嵌套对象
func SafeMap(data map[string]interface{}, keys ...string) map[string]interface{} {
	v := SafeValue(data, keys...)
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return nil
}

// SafeSlice 取数组
func SafeSlice(data map[string]interface{}, keys ...string) []interface{} {
	v := SafeValue(data, keys...)
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

// AsMap 任意值转对象，失败返回nil
func AsMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return nil
}

// ToFloat 任意值转浮点指针，与 SafeFloat 共用解析规则
func ToFloat(v interface{}) *float64 {
	return toFloat(v)
}
