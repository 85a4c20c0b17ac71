// Package board 实现 Lights Out 的棋盘状态机
//
// 棋盘由 rows x cols 个布尔格子组成（true 表示点亮），按行优先、从 0 开始索引。
// 切换（Toggle）一个格子会同时翻转其上下左右四个邻居，越界的邻居直接跳过。
// 当所有格子都熄灭时游戏获胜。
//
// Board 是值类型：Toggle 返回新的棋盘，原棋盘保持不变，
// 因此可以直接用 Equal 与期望棋盘比较。
package board

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// 默认棋盘参数（与原版 defaultProps 一致）
const (
	DefaultRows            = 5
	DefaultCols            = 5
	DefaultChanceStartsOff = 0.35
)

// MaxCells 单个棋盘允许的最大格子数
const MaxCells = 1 << 20

// ErrInvalidConfiguration 表示创建棋盘的参数不合法
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// Status 棋盘的可观察状态
type Status int

const (
	// StatusPlaying 仍有点亮的格子
	StatusPlaying Status = iota
	// StatusWon 所有格子都已熄灭（终止状态）
	StatusWon
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Board 一个时刻的完整棋盘
//
// 零值是 0x0 的空棋盘，只能通过 New / Filled / FromRows 创建可用的棋盘。
type Board struct {
	rows  int
	cols  int
	cells []bool // 行优先存储，下标 row*cols+col
}

// Filled 创建所有格子状态相同的棋盘
func Filled(rows, cols int, lit bool) (Board, error) {
	if err := validateSize(rows, cols); err != nil {
		return Board{}, err
	}
	b := Board{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
	if lit {
		for i := range b.cells {
			b.cells[i] = true
		}
	}
	return b, nil
}

// FromRows 根据二维布尔数组创建棋盘
// 输入会被复制；空输入或行长度不一致时返回 ErrInvalidConfiguration
func FromRows(rows [][]bool) (Board, error) {
	if len(rows) == 0 {
		return Board{}, fmt.Errorf("%w: no rows", ErrInvalidConfiguration)
	}
	cols := len(rows[0])
	if err := validateSize(len(rows), cols); err != nil {
		return Board{}, err
	}

	b := Board{rows: len(rows), cols: cols, cells: make([]bool, 0, len(rows)*cols)}
	for r, row := range rows {
		if len(row) != cols {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfiguration, r, len(row), cols)
		}
		b.cells = append(b.cells, row...)
	}
	return b, nil
}

// Rows 返回行数（高度）
func (b Board) Rows() int {
	return b.rows
}

// Cols 返回列数（宽度）
func (b Board) Cols() int {
	return b.cols
}

// Contains 判断坐标是否在棋盘范围内
func (b Board) Contains(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// IsLit 返回格子是否点亮，越界坐标视为熄灭
func (b Board) IsLit(row, col int) bool {
	if !b.Contains(row, col) {
		return false
	}
	return b.cells[row*b.cols+col]
}

// LitCount 统计点亮的格子数量
func (b Board) LitCount() int {
	count := 0
	for _, lit := range b.cells {
		if lit {
			count++
		}
	}
	return count
}

// IsWon 所有格子都熄灭时返回 true
func (b Board) IsWon() bool {
	return b.LitCount() == 0
}

// Status 返回当前状态
func (b Board) Status() Status {
	if b.IsWon() {
		return StatusWon
	}
	return StatusPlaying
}

// Cells 返回格子状态的二维副本（渲染层使用）
func (b Board) Cells() [][]bool {
	out := make([][]bool, b.rows)
	for r := 0; r < b.rows; r++ {
		row := make([]bool, b.cols)
		copy(row, b.cells[r*b.cols:(r+1)*b.cols])
		out[r] = row
	}
	return out
}

// Equal 判断两个棋盘尺寸和格子状态是否完全一致
func (b Board) Equal(other Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String 以文本形式输出棋盘，点亮为 "O"，熄灭为 "."
//
// 例如：
//
//	. . .
//	O O .
//	. . .
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if b.cells[r*b.cols+c] {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func (b Board) clone() Board {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return Board{rows: b.rows, cols: b.cols, cells: cells}
}

func validateSize(rows, cols int) error {
	if rows < 1 {
		return fmt.Errorf("%w: rows must be at least 1, got %d", ErrInvalidConfiguration, rows)
	}
	if cols < 1 {
		return fmt.Errorf("%w: cols must be at least 1, got %d", ErrInvalidConfiguration, cols)
	}
	// 先除后比较，避免 rows*cols 溢出
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidConfiguration, rows, cols, MaxCells)
	}
	return nil
}

func validateChance(chanceStartsOff float64) error {
	if math.IsNaN(chanceStartsOff) || chanceStartsOff < 0 || chanceStartsOff > 1 {
		return fmt.Errorf("%w: chanceStartsOff must be within [0, 1], got %v", ErrInvalidConfiguration, chanceStartsOff)
	}
	return nil
}

// Validate 检查创建棋盘的参数
func Validate(rows, cols int, chanceStartsOff float64) error {
	if err := validateSize(rows, cols); err != nil {
		return err
	}
	return validateChance(chanceStartsOff)
}
