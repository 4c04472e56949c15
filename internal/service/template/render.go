package template

import (
	"encoding/json"
	"regexp"
	"strconv"

	"gitee.com/flycash/notification-policy/internal/domain"
)

// 变量名允许字母、数字、下划线、点和中划线，花括号内两侧可以有空白
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`)

// Render 替换模板里的 {{variable}}：
//   - 变量在 catalog 中且 bindings 有值，替换为值
//   - 变量在 catalog 中但 bindings 没有值，替换为 {variable}
//   - 变量不在 catalog 中，原样保留
//
// 纯函数，相同输入总是得到相同输出
func Render(tpl string, bindings map[string]string, catalog []domain.TemplateVariable) string {
	if tpl == "" {
		return ""
	}
	known := make(map[string]struct{}, len(catalog))
	for _, v := range catalog {
		known[v.Variable] = struct{}{}
	}
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if _, ok := known[name]; !ok {
			return match
		}
		if val, ok := bindings[name]; ok {
			return val
		}
		return "{" + name + "}"
	})
}

// Bindings 把事件上下文转成模板变量的值。nil 视为没有提供
func Bindings(ctx map[string]any) map[string]string {
	res := make(map[string]string, len(ctx))
	for k, v := range ctx {
		if v == nil {
			continue
		}
		res[k] = stringify(v)
	}
	return res
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
