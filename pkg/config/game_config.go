package config

import (
	"fmt"

	"github.com/gonewx/lightsout/pkg/board"
	"github.com/gonewx/lightsout/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 嵌入的默认配置文件路径
const DefaultGameConfigPath = "data/config/game.yaml"

// BoardConfig 棋盘参数
type BoardConfig struct {
	Rows int `yaml:"rows"` // 行数（高度）
	Cols int `yaml:"cols"` // 列数（宽度）

	// ChanceStartsOff 格子初始熄灭的概率
	// 随机数 >= 该值时格子点亮，所以 0.35 大约得到 65% 点亮的棋盘
	ChanceStartsOff float64 `yaml:"chanceStartsOff"`
}

// LayoutConfig GUI 布局参数（像素）
type LayoutConfig struct {
	CellSize     int `yaml:"cellSize"`     // 每个格子的边长
	CellGap      int `yaml:"cellGap"`      // 格子之间的间距
	MarginX      int `yaml:"marginX"`      // 左右边距
	MarginTop    int `yaml:"marginTop"`    // 顶部边距（标题区域）
	MarginBottom int `yaml:"marginBottom"` // 底部边距（提示区域）
}

// GameConfig 游戏配置文件结构
type GameConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Layout LayoutConfig `yaml:"layout"`
	Seed   uint64       `yaml:"seed"`   // 随机种子，0 表示不设种子
	Locale string       `yaml:"locale"` // 界面语言，为空时跟随系统
}

// DefaultGameConfig 返回默认配置（与 data/config/game.yaml 一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Board: BoardConfig{
			Rows:            board.DefaultRows,
			Cols:            board.DefaultCols,
			ChanceStartsOff: board.DefaultChanceStartsOff,
		},
		Layout: LayoutConfig{
			CellSize:     80,
			CellGap:      6,
			MarginX:      40,
			MarginTop:    140,
			MarginBottom: 60,
		},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
// 参数：
//
//	filepath - "data/" 开头时读取嵌入资源，否则读取磁盘文件
//
// 返回：
//
//	*GameConfig - 解析后的配置对象，文件中缺失的字段使用默认值
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析并校验 YAML 配置内容
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置的完整性和合法性
func (c *GameConfig) Validate() error {
	if err := board.Validate(c.Board.Rows, c.Board.Cols, c.Board.ChanceStartsOff); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	return validateLayout(&c.Layout)
}

// validateLayout 验证布局参数
func validateLayout(l *LayoutConfig) error {
	if l.CellSize < 8 {
		return fmt.Errorf("layout: cellSize must be at least 8, got %d", l.CellSize)
	}
	if l.CellGap < 0 {
		return fmt.Errorf("layout: cellGap cannot be negative, got %d", l.CellGap)
	}
	if l.MarginX < 0 || l.MarginTop < 0 || l.MarginBottom < 0 {
		return fmt.Errorf("layout: margins cannot be negative, got x=%d top=%d bottom=%d",
			l.MarginX, l.MarginTop, l.MarginBottom)
	}
	return nil
}
