//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.lightsout -o build/android/lightsout.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/LightsOut.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/lightsout/data"
	"github.com/gonewx/lightsout/pkg/app"
	"github.com/gonewx/lightsout/pkg/embedded"
)

func init() {
	// 配置和文本资源由 data 包嵌入，移动端无需额外准备
	embedded.Init(data.FS)

	// 移动端没有命令行参数，使用内置配置和已保存的偏好
	// 移动端环境变量不可控，传入空表以忽略 LIGHTSOUT_*
	cfg := app.Config{
		Verbose: true,
		Environ: map[string]string{},
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
