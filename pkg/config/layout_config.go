package config

// 布局配置
// 本文件根据棋盘尺寸和 LayoutConfig 计算 GUI 中网格的位置和窗口大小

const (
	// MinWindowWidth 窗口最小宽度，保证标题和胜利横幅能完整显示
	MinWindowWidth = 480

	// TitleBaselineY 标题文字的中心Y坐标
	TitleBaselineY = 60.0
)

// GridLayout 网格在屏幕上的布局
// 所有坐标都是逻辑屏幕坐标（ebiten Layout 返回的尺寸），与实际窗口缩放无关
type GridLayout struct {
	Rows     int     // 行数
	Cols     int     // 列数
	StartX   float64 // 网格左上角X坐标
	StartY   float64 // 网格左上角Y坐标
	CellSize float64 // 格子边长
	CellGap  float64 // 格子间距

	ScreenWidth  int // 逻辑屏幕宽度
	ScreenHeight int // 逻辑屏幕高度
}

// NewGridLayout 根据布局参数和棋盘尺寸计算网格布局
// 网格在水平方向居中，窗口宽度不小于 MinWindowWidth
func NewGridLayout(l LayoutConfig, rows, cols int) GridLayout {
	cell := float64(l.CellSize)
	gap := float64(l.CellGap)

	gridW := float64(cols)*cell + float64(cols-1)*gap
	gridH := float64(rows)*cell + float64(rows-1)*gap

	width := int(gridW) + 2*l.MarginX
	if width < MinWindowWidth {
		width = MinWindowWidth
	}
	height := l.MarginTop + int(gridH) + l.MarginBottom

	return GridLayout{
		Rows:         rows,
		Cols:         cols,
		StartX:       (float64(width) - gridW) / 2,
		StartY:       float64(l.MarginTop),
		CellSize:     cell,
		CellGap:      gap,
		ScreenWidth:  width,
		ScreenHeight: height,
	}
}

// Pitch 相邻格子左上角之间的距离
func (g GridLayout) Pitch() float64 {
	return g.CellSize + g.CellGap
}

// GetGridBounds 返回网格的屏幕坐标边界
// 返回值：startX, startY, endX, endY
func (g GridLayout) GetGridBounds() (float64, float64, float64, float64) {
	endX := g.StartX + float64(g.Cols)*g.Pitch() - g.CellGap
	endY := g.StartY + float64(g.Rows)*g.Pitch() - g.CellGap
	return g.StartX, g.StartY, endX, endY
}

// CellRect 返回格子的左上角坐标和边长
func (g GridLayout) CellRect(row, col int) (x, y, size float64) {
	x = g.StartX + float64(col)*g.Pitch()
	y = g.StartY + float64(row)*g.Pitch()
	return x, y, g.CellSize
}
