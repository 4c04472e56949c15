package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/service/eventsource"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

const maxKeyLength = 128

// ScanResult 一次扫描的结果，Events 是扫描之后的完整事件列表
type ScanResult struct {
	Events   []domain.EventDescriptor `json:"events"`
	Inserted []string                 `json:"inserted"`
	Skipped  []string                 `json:"skipped"`
}

// Service 事件注册表
//
//go:generate mockgen -source=./registry.go -destination=./mocks/registry.mock.go -package=registrymocks Service
type Service interface {
	// Scan 把事件源里新出现的事件写入注册表，已有的事件保持不变
	Scan(ctx context.Context) (ScanResult, error)
	List(ctx context.Context) ([]domain.EventDescriptor, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Catalog 已注册事件的模板变量，未注册时返回 errs.ErrUnknownEvent
	Catalog(ctx context.Context, key string) ([]domain.TemplateVariable, error)
	// Purge 管理员删除已注册的事件。事件源仍然声明它时，下一次 Scan 会重新写入
	Purge(ctx context.Context, key string) error
}

type service struct {
	repo   repository.EventRepository
	source eventsource.Source
	logger *elog.Component
}

func NewService(repo repository.EventRepository, source eventsource.Source) Service {
	return &service{
		repo:   repo,
		source: source,
		logger: elog.DefaultLogger,
	}
}

func (s *service) Scan(ctx context.Context) (ScanResult, error) {
	candidates, err := s.source.Events(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("%w: %w", errs.ErrRegistryUnavailable, err)
	}
	candidates, err = s.normalize(candidates)
	if err != nil {
		return ScanResult{}, err
	}

	keys := slice.Map(candidates, func(_ int, src domain.EventDescriptor) string {
		return src.Key
	})
	existing, err := s.repo.FindByKeys(ctx, keys)
	if err != nil {
		return ScanResult{}, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		known[e.Key] = struct{}{}
	}

	res := ScanResult{Inserted: []string{}, Skipped: []string{}}
	for _, c := range candidates {
		if _, ok := known[c.Key]; ok {
			res.Skipped = append(res.Skipped, c.Key)
			continue
		}
		_, err = s.repo.Create(ctx, c)
		switch {
		case err == nil:
			res.Inserted = append(res.Inserted, c.Key)
		case errors.Is(err, errs.ErrEventDuplicate):
			// 并发扫描时被别的实例先插入了
			res.Skipped = append(res.Skipped, c.Key)
		default:
			return ScanResult{}, fmt.Errorf("写入事件 %s 失败: %w", c.Key, err)
		}
	}

	res.Events, err = s.repo.FindAll(ctx)
	if err != nil {
		return ScanResult{}, err
	}
	if len(res.Inserted) > 0 {
		s.logger.Info("事件扫描完成", elog.Any("inserted", res.Inserted), elog.Int("skipped", len(res.Skipped)))
	}
	return res, nil
}

// normalize 先校验全部候选事件再写入，任意一个非法都不做任何写入。
// 同一次扫描里重复出现的 key 只保留第一个
func (s *service) normalize(candidates []domain.EventDescriptor) ([]domain.EventDescriptor, error) {
	res := make([]domain.EventDescriptor, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	var violations []errs.FieldError
	for i, c := range candidates {
		c.Key = strings.TrimSpace(c.Key)
		c.Label = strings.TrimSpace(c.Label)
		if reason := checkKey(c.Key); reason != "" {
			violations = append(violations, errs.FieldError{Field: fmt.Sprintf("events[%d].key", i), Reason: reason})
			continue
		}
		if _, ok := seen[c.Key]; ok {
			continue
		}
		seen[c.Key] = struct{}{}
		if c.Label == "" {
			c.Label = c.Key
		}
		res = append(res, c)
	}
	if err := errs.NewValidationError(violations...); err != nil {
		return nil, err
	}
	return res, nil
}

func checkKey(key string) string {
	if key == "" {
		return "不能为空"
	}
	if len(key) > maxKeyLength {
		return fmt.Sprintf("长度不能超过 %d", maxKeyLength)
	}
	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return "不能包含空白字符"
	}
	return ""
}

func (s *service) List(ctx context.Context) ([]domain.EventDescriptor, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, key)
}

func (s *service) Catalog(ctx context.Context, key string) ([]domain.TemplateVariable, error) {
	ok, err := s.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownEvent, key)
	}
	catalog, err := s.source.Catalog(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrRegistryUnavailable, err)
	}
	return catalog, nil
}

func (s *service) Purge(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: key 不能为空", errs.ErrInvalidParameter)
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("事件已清理", elog.String("key", key))
	return nil
}
