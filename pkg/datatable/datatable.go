// Package datatable 实现 DataTables 服务端模式的数据源
//
// 请求参数: draw, start, length, search[value], order[0][column], order[0][dir], columns[i][data]
// 返回结构: {draw, recordsTotal, recordsFiltered, data}
package datatable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	servertiming "github.com/mitchellh/go-server-timing"
	"gorm.io/gorm"
)

const (
	DefaultLength = 10
	MaxLength     = 500
)

// Params 表格请求参数
type Params struct {
	Draw     int
	Start    int
	Length   int // -1 表示全部
	Search   string
	OrderCol string // 排序列的 data 名
	OrderDir string // asc | desc
}

// ParseParams 从 query string 解析参数
// 非法数值回退到默认值，不报错
func ParseParams(values url.Values) Params {
	p := Params{
		Draw:   atoi(values.Get("draw"), 0),
		Start:  atoi(values.Get("start"), 0),
		Length: atoi(values.Get("length"), DefaultLength),
		Search: strings.TrimSpace(values.Get("search[value]")),
	}
	if p.Start < 0 {
		p.Start = 0
	}
	if p.Length == 0 || p.Length < -1 || p.Length > MaxLength {
		p.Length = DefaultLength
	}

	if idx := values.Get("order[0][column]"); idx != "" {
		p.OrderCol = values.Get(fmt.Sprintf("columns[%s][data]", idx))
		p.OrderDir = strings.ToLower(values.Get("order[0][dir]"))
	}
	if p.OrderDir != "asc" {
		p.OrderDir = "desc"
	}
	return p
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Response 表格返回结构
type Response struct {
	Draw            int              `json:"draw"`
	RecordsTotal    int64            `json:"recordsTotal"`
	RecordsFiltered int64            `json:"recordsFiltered"`
	Data            []map[string]any `json:"data"`
}

type column[T any] struct {
	name string
	fn   func(T) any
}

// Table 单次请求的表格构建器，不可复用
type Table[T any] struct {
	query        *gorm.DB
	selects      string
	searchable   []string
	orderable    map[string]string
	defaultOrder string
	edits        []column[T]
	adds         []column[T]
}

// Of 以 query 为数据源创建表格
// query 需已指定 Model 或 Table，计数时不带 Select
func Of[T any](query *gorm.DB) *Table[T] {
	return &Table[T]{
		query:        query,
		orderable:    map[string]string{},
		defaultOrder: "id DESC",
	}
}

// Select 取数据时使用的列，计数不受影响
func (t *Table[T]) Select(selects string) *Table[T] {
	t.selects = selects
	return t
}

// Searchable 参与 search[value] 模糊匹配的列
func (t *Table[T]) Searchable(cols ...string) *Table[T] {
	t.searchable = append(t.searchable, cols...)
	return t
}

// Orderable 允许排序的列：key 为前端 data 名，column 为 SQL 列
func (t *Table[T]) Orderable(key, column string) *Table[T] {
	t.orderable[key] = column
	return t
}

// DefaultOrder 未指定排序时使用
func (t *Table[T]) DefaultOrder(order string) *Table[T] {
	t.defaultOrder = order
	return t
}

// EditColumn 替换已有列的值
func (t *Table[T]) EditColumn(name string, fn func(T) any) *Table[T] {
	t.edits = append(t.edits, column[T]{name: name, fn: fn})
	return t
}

// AddColumn 追加计算列
func (t *Table[T]) AddColumn(name string, fn func(T) any) *Table[T] {
	t.adds = append(t.adds, column[T]{name: name, fn: fn})
	return t
}

// Make 执行查询：总数、过滤后总数、当前页
func (t *Table[T]) Make(ctx context.Context, p Params) (*Response, error) {
	timing := servertiming.FromContext(ctx)
	if timing != nil {
		m := timing.NewMetric("datatable").WithDesc("listing feed queries").Start()
		defer m.Stop()
	}

	base := t.query.WithContext(ctx)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("统计总数失败: %w", err)
	}

	filtered := base.Session(&gorm.Session{})
	if p.Search != "" && len(t.searchable) > 0 {
		like := "%" + escapeLike(p.Search) + "%"
		conds := make([]string, 0, len(t.searchable))
		args := make([]any, 0, len(t.searchable))
		for _, col := range t.searchable {
			conds = append(conds, col+` LIKE ? ESCAPE '\'`)
			args = append(args, like)
		}
		filtered = filtered.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	recordsFiltered := total
	if p.Search != "" && len(t.searchable) > 0 {
		if err := filtered.Session(&gorm.Session{}).Count(&recordsFiltered).Error; err != nil {
			return nil, fmt.Errorf("统计过滤结果失败: %w", err)
		}
	}

	page := filtered.Session(&gorm.Session{})
	if t.selects != "" {
		page = page.Select(t.selects)
	}
	if col, ok := t.orderable[p.OrderCol]; ok {
		page = page.Order(col + " " + strings.ToUpper(p.OrderDir))
	} else if t.defaultOrder != "" {
		page = page.Order(t.defaultOrder)
	}
	if p.Length > 0 {
		page = page.Offset(p.Start).Limit(p.Length)
	}

	var rows []T
	if err := page.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询列表失败: %w", err)
	}

	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m, err := t.render(row)
		if err != nil {
			return nil, err
		}
		data = append(data, m)
	}

	return &Response{
		Draw:            p.Draw,
		RecordsTotal:    total,
		RecordsFiltered: recordsFiltered,
		Data:            data,
	}, nil
}

// render 行转 map，再套用列变换
// likeEscaper 搜索词按字面匹配，% 和 _ 不作通配符
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (t *Table[T]) render(row T) (map[string]any, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("序列化行失败: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("序列化行失败: %w", err)
	}
	for _, c := range t.edits {
		m[c.name] = c.fn(row)
	}
	for _, c := range t.adds {
		m[c.name] = c.fn(row)
	}
	return m, nil
}
