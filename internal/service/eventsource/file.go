package eventsource

import (
	"context"
	"fmt"
	"os"

	"gitee.com/flycash/notification-policy/internal/domain"
	"github.com/ecodeclub/ekit/slice"
	"gopkg.in/yaml.v2"
)

var _ Source = (*FileSource)(nil)

type declaration struct {
	Events []eventDecl `yaml:"events"`
}

type eventDecl struct {
	Key       string         `yaml:"key"`
	Label     string         `yaml:"label"`
	Variables []variableDecl `yaml:"variables"`
}

type variableDecl struct {
	Variable    string `yaml:"variable"`
	Description string `yaml:"description"`
}

// FileSource 从 YAML 声明文件读取事件，每次调用都重新读取，发布新的声明文件不需要重启
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Events(ctx context.Context) ([]domain.EventDescriptor, error) {
	decl, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return slice.Map(decl.Events, func(_ int, src eventDecl) domain.EventDescriptor {
		return domain.EventDescriptor{Key: src.Key, Label: src.Label}
	}), nil
}

func (f *FileSource) Catalog(ctx context.Context, eventKey string) ([]domain.TemplateVariable, error) {
	decl, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range decl.Events {
		if e.Key != eventKey {
			continue
		}
		return slice.Map(e.Variables, func(_ int, src variableDecl) domain.TemplateVariable {
			return domain.TemplateVariable{Variable: src.Variable, Description: src.Description}
		}), nil
	}
	return []domain.TemplateVariable{}, nil
}

func (f *FileSource) load(ctx context.Context) (declaration, error) {
	if err := ctx.Err(); err != nil {
		return declaration{}, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return declaration{}, fmt.Errorf("读取事件声明文件失败: %w", err)
	}
	return parse(data)
}

// parse 解析事件声明
func parse(data []byte) (declaration, error) {
	var decl declaration
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return declaration{}, fmt.Errorf("解析事件声明失败: %w", err)
	}
	return decl, nil
}
