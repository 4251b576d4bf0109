package listquery

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPageSize 每页条数的默认值
const DefaultPageSize = 10

// PaginationConfig 进程级分页配置，所有实体共用同一个 PageSize
type PaginationConfig struct {
	PageSize int
}

func (c PaginationConfig) pageSize() int {
	if c.PageSize < 1 {
		return DefaultPageSize
	}
	return c.PageSize
}

// PageWindow 分页窗口，Page 从 1 开始且恒 >= 1
type PageWindow struct {
	Page int
	Size int
}

// Offset 跳过的条数 = Size * (Page - 1)，溢出时饱和到 math.MaxInt，超出范围的页得到空结果
func (w PageWindow) Offset() int {
	if w.Page <= 1 || w.Size <= 0 {
		return 0
	}
	if w.Page-1 > math.MaxInt/w.Size {
		return math.MaxInt
	}
	return w.Size * (w.Page - 1)
}

// Limit 取出的条数
func (w PageWindow) Limit() int {
	return w.Size
}

// ParsePage 解析页码：缺失、非整数或小于 1 一律视为 1，不设上限
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
