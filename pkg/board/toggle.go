package board

// neighborOffsets 目标格子自身及其上下左右四个邻居
var neighborOffsets = [5][2]int{
	{0, 0},
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Toggle 翻转 (row, col) 及其正交邻居，返回新棋盘和是否获胜
//
// 越界的候选坐标被静默跳过，所以角落只影响 3 个格子、边缘影响 4 个。
// 任何整数坐标都合法，完全在棋盘外的坐标不翻转任何格子。
// 接收者不会被修改；对已获胜的棋盘调用同样按规则翻转并重新判定。
func (b Board) Toggle(row, col int) (Board, bool) {
	next := b.clone()
	for _, off := range neighborOffsets {
		r, c := row+off[0], col+off[1]
		if next.Contains(r, c) {
			i := r*next.cols + c
			next.cells[i] = !next.cells[i]
		}
	}
	return next, next.IsWon()
}

// AffectedCells 返回 Toggle(row, col) 会翻转的坐标列表（已过滤越界坐标）
func (b Board) AffectedCells(row, col int) [][2]int {
	out := make([][2]int, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		r, c := row+off[0], col+off[1]
		if b.Contains(r, c) {
			out = append(out, [2]int{r, c})
		}
	}
	return out
}
