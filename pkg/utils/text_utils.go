package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFontSource 加载字体源
// 参数:
//   - path: TTF/OTF 字体文件路径，为空时使用内置的 Go Regular 字体
//
// 注意：内置字体不包含中文字形，显示中文界面需要指定包含 CJK 字形的字体
func LoadFontSource(path string) (*text.GoTextFaceSource, error) {
	fontData := goregular.TTF
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return source, nil
}

// NewFace 创建指定大小的字体
func NewFace(source *text.GoTextFaceSource, size float64) *text.GoTextFace {
	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
}

// MeasureText 测量文本宽度
func MeasureText(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// DrawCenteredText 以 (centerX, centerY) 为中心绘制单行文本
func DrawCenteredText(screen *ebiten.Image, textStr string, font *text.GoTextFace, centerX, centerY float64, clr color.Color) {
	if textStr == "" || font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(centerX, centerY)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, textStr, font, op)
}
