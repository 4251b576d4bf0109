package listquery

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrUnknownEntity = errors.New("不支持的列表实体")
	ErrMissingActor  = errors.New("缺少调用方身份")
)

// Builder 根据 (实体, 原始参数, 角色, 身份) 构造过滤描述符与分页窗口
// 无内部可变状态，可被多个请求并发使用
type Builder struct {
	pageSize int
}

func NewBuilder(cfg PaginationConfig) *Builder {
	return &Builder{pageSize: cfg.pageSize()}
}

// PageSize 进程级每页条数
func (b *Builder) PageSize() int {
	return b.pageSize
}

// Window 仅解析分页窗口
func (b *Builder) Window(params Params) PageWindow {
	return PageWindow{Page: ParsePage(params["page"]), Size: b.pageSize}
}

// Build 依次叠加：关键字搜索 → 显式过滤参数 → 角色限制
// 相同输入恒得到相同输出；未识别的参数键被忽略
func (b *Builder) Build(entity Entity, params Params, role Role, actorID string) (*Filter, PageWindow, error) {
	cfg, ok := entityTable[entity]
	if !ok {
		return nil, PageWindow{}, ErrUnknownEntity
	}

	f := &Filter{Entity: entity}

	if q := strings.TrimSpace(params["search"]); q != "" {
		for _, field := range cfg.search {
			f.Search = append(f.Search, Contains(field, q))
		}
	}

	for _, p := range cfg.params {
		raw := strings.TrimSpace(params[p.key])
		if raw == "" {
			continue
		}
		if p.numeric {
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			f.Match = append(f.Match, Equals(p.field, n))
			continue
		}
		f.Match = append(f.Match, Equals(p.field, raw))
	}

	r, err := restrictionFor(cfg, role, actorID)
	if err != nil {
		return nil, PageWindow{}, err
	}
	f.Restriction = r

	return f, b.Window(params), nil
}

func restrictionFor(cfg entityConfig, role Role, actorID string) (*Restriction, error) {
	if cfg.owner == ownerNone || role == RoleAdmin {
		return nil, nil
	}

	var scope Scope
	switch role {
	case RoleTeacher:
		scope = ScopeClassTaughtBy
		if cfg.owner == ownerLesson {
			scope = ScopeLessonTaughtBy
		}
	case RoleStudent:
		scope = ScopeClassHasStudent
	case RoleParent:
		scope = ScopeClassHasChildOf
	default:
		// 未识别角色：只保留全校通用的记录
		return &Restriction{Scope: ScopeDenyAll, IncludeUnscoped: cfg.unscoped}, nil
	}

	if actorID == "" {
		return nil, ErrMissingActor
	}
	return &Restriction{Scope: scope, ActorID: actorID, IncludeUnscoped: cfg.unscoped}, nil
}
