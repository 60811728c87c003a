package errors

import "strings"

// Category classifies a raw provider or device error into one of the fixed
// user-facing buckets. Raw text is matched best-effort; anything unmatched
// falls through as CategoryUnknown with the original message.
type Category int

// User-facing error categories.
const (
	CategoryUnknown Category = iota
	CategoryPermissionDenied
	CategoryTimeout
	CategoryMapNotReady
	CategoryMissingCoordinates
	CategoryInvalidKey
)

// localized user-facing messages, one per category. The product surface is
// Chinese; raw text is preserved for CategoryUnknown.
var localizedMessages = map[Category]string{
	CategoryPermissionDenied:   "定位权限被拒绝，或页面非 HTTPS，无法获取定位",
	CategoryTimeout:            "定位超时，请检查网络后重试",
	CategoryMapNotReady:        "高德地图未就绪，请检查 Key 或网络",
	CategoryMissingCoordinates: "该地点没有坐标，无法规划路线",
	CategoryInvalidKey:         "高德 Key 无效或权限不足",
}

// Classify maps an error to a user-facing category.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission"),
		strings.Contains(msg, "denied"),
		strings.Contains(msg, "secure origin"):
		return CategoryPermissionDenied
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return CategoryTimeout
	case strings.Contains(msg, "amap not ready"), strings.Contains(msg, "map not ready"):
		return CategoryMapNotReady
	case strings.Contains(msg, "no coordinates"),
		strings.Contains(msg, "missing destination coordinates"):
		return CategoryMissingCoordinates
	case strings.Contains(msg, "invalid_userkey"), strings.Contains(msg, "key"):
		return CategoryInvalidKey
	default:
		return CategoryUnknown
	}
}

// Localize returns a short human-readable message for err, translated to the
// fixed set of localized categories. Unknown errors pass through verbatim.
func Localize(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := localizedMessages[Classify(err)]; ok {
		return msg
	}
	raw := err.Error()
	if raw == "" {
		return "未知错误"
	}
	return raw
}
