package template

import (
	"testing"

	"gitee.com/flycash/notification-policy/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Parallel()
	catalog := []domain.TemplateVariable{
		{Variable: "name", Description: "姓名"},
		{Variable: "course.title", Description: "课程"},
	}

	testCases := []struct {
		name     string
		tpl      string
		bindings map[string]string
		want     string
	}{
		{
			name:     "替换变量",
			tpl:      "Hi {{name}}",
			bindings: map[string]string{"name": "Ava"},
			want:     "Hi Ava",
		},
		{
			name:     "缺少值时输出单花括号占位",
			tpl:      "Hi {{name}}",
			bindings: map[string]string{},
			want:     "Hi {name}",
		},
		{
			name:     "不在目录中的变量原样保留",
			tpl:      "Hi {{name}}, {{unknown}}",
			bindings: map[string]string{"name": "Ava", "unknown": "x"},
			want:     "Hi Ava, {{unknown}}",
		},
		{
			name:     "花括号内的空白",
			tpl:      "{{ name }} 学习 {{course.title}}",
			bindings: map[string]string{"name": "Ava", "course.title": "Go"},
			want:     "Ava 学习 Go",
		},
		{
			name:     "多次出现",
			tpl:      "{{name}}{{name}}",
			bindings: map[string]string{"name": "a"},
			want:     "aa",
		},
		{
			name:     "值里的花括号不会被再次替换",
			tpl:      "{{name}}",
			bindings: map[string]string{"name": "{{course.title}}"},
			want:     "{{course.title}}",
		},
		{
			name: "非法变量名不是占位符",
			tpl:  "{{a b}} {{}}",
			want: "{{a b}} {{}}",
		},
		{
			name: "空模板",
			tpl:  "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Render(tc.tpl, tc.bindings, catalog)
			assert.Equal(t, tc.want, got)
			// 纯函数
			assert.Equal(t, got, Render(tc.tpl, tc.bindings, catalog))
		})
	}
}

func TestBindings(t *testing.T) {
	t.Parallel()
	got := Bindings(map[string]any{
		"s":     "str",
		"i":     float64(3),
		"f":     1.5,
		"b":     true,
		"n":     nil,
		"obj":   map[string]any{"a": 1},
		"int64": int64(7),
	})
	assert.Equal(t, map[string]string{
		"s":     "str",
		"i":     "3",
		"f":     "1.5",
		"b":     "true",
		"obj":   `{"a":1}`,
		"int64": "7",
	}, got)
}
