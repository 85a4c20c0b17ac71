package utils

import "github.com/gonewx/lightsout/pkg/config"

// MouseToGridCoords 将鼠标屏幕坐标转换为棋盘网格坐标
// 参数:
//   - mouseX, mouseY: 鼠标的逻辑屏幕坐标
//   - layout: 网格布局
//
// 返回:
//   - row: 行索引
//   - col: 列索引
//   - isValid: 是否点中了某个格子（点在格子间距上或网格外返回 false）
func MouseToGridCoords(mouseX, mouseY int, layout config.GridLayout) (row, col int, isValid bool) {
	x := float64(mouseX) - layout.StartX
	y := float64(mouseY) - layout.StartY
	if x < 0 || y < 0 {
		return 0, 0, false
	}

	pitch := layout.Pitch()
	col = int(x / pitch)
	row = int(y / pitch)
	if col >= layout.Cols || row >= layout.Rows {
		return 0, 0, false
	}

	// 落在格子之间的间距上
	if x-float64(col)*pitch >= layout.CellSize || y-float64(row)*pitch >= layout.CellSize {
		return 0, 0, false
	}

	return row, col, true
}

// GridToScreenCoords 将网格坐标转换为格子中心的屏幕坐标
// 参数:
//   - row, col: 网格坐标
//   - layout: 网格布局
//
// 返回:
//   - centerX, centerY: 格子中心的屏幕坐标
func GridToScreenCoords(row, col int, layout config.GridLayout) (centerX, centerY float64) {
	x, y, size := layout.CellRect(row, col)
	return x + size/2, y + size/2
}
