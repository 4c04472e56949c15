package eventsource

import (
	"os"
	"path/filepath"
	"testing"

	"gitee.com/flycash/notification-policy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDecl = `
events:
  - key: course.enrolled
    label: 学员报名课程
    variables:
      - variable: learnerName
        description: 学员姓名
      - variable: courseTitle
        description: 课程名称
  - key: payment.succeeded
    label: 支付成功
`

func TestFileSource(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDecl), 0o600))
	src := NewFileSource(path)

	events, err := src.Events(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []domain.EventDescriptor{
		{Key: "course.enrolled", Label: "学员报名课程"},
		{Key: "payment.succeeded", Label: "支付成功"},
	}, events)

	catalog, err := src.Catalog(t.Context(), "course.enrolled")
	require.NoError(t, err)
	assert.Equal(t, []domain.TemplateVariable{
		{Variable: "learnerName", Description: "学员姓名"},
		{Variable: "courseTitle", Description: "课程名称"},
	}, catalog)

	catalog, err = src.Catalog(t.Context(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestFileSource_Unavailable(t *testing.T) {
	t.Parallel()
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := src.Events(t.Context())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events: [a: b: c"), 0o600))
	_, err = NewFileSource(path).Events(t.Context())
	assert.Error(t, err)
}
