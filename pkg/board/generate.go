package board

import "math/rand/v2"

// RandomSource 提供 [0, 1) 区间的均匀随机数
// *rand.Rand（math/rand/v2）直接满足该接口，测试中可以注入固定序列
type RandomSource interface {
	Float64() float64
}

// globalSource 使用进程级随机源（未设种子，结果不可复现）
type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// NewSeededSource 返回一个可复现的随机源
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New 创建 rows x cols 的随机棋盘
//
// 每个格子独立抽取一个随机数 r，当 r >= chanceStartsOff 时点亮。
// 注意 chanceStartsOff 是格子初始"熄灭"的概率：0.35 大约得到 65% 点亮的棋盘。
// 抽取顺序为行优先。
//
// 参数：
//   - rows, cols: 棋盘尺寸，必须 >= 1
//   - chanceStartsOff: [0, 1] 区间
//   - src: 随机源，为 nil 时使用进程级随机源
//
// 返回：
//   - error: 参数不合法时返回包装了 ErrInvalidConfiguration 的错误
func New(rows, cols int, chanceStartsOff float64, src RandomSource) (Board, error) {
	if err := Validate(rows, cols, chanceStartsOff); err != nil {
		return Board{}, err
	}
	if src == nil {
		src = globalSource{}
	}

	b := Board{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
	for i := range b.cells {
		b.cells[i] = src.Float64() >= chanceStartsOff
	}
	return b, nil
}
