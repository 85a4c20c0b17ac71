package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/lightsout/data"
	"github.com/gonewx/lightsout/pkg/app"
	"github.com/gonewx/lightsout/pkg/embedded"
	"github.com/gonewx/lightsout/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	fontPath   = flag.String("font", "", "TTF/OTF 字体文件路径（中文界面需要）")
	fullscreen = flag.Bool("fullscreen", false, "全屏启动")
)

func main() {
	overrides := game.OverrideFlags(flag.CommandLine)
	flag.Parse()

	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Overrides:  overrides(),
		FontPath:   *fontPath,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 窗口关闭时 Update 已保存偏好，这里兜底其他退出路径
	err = ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", err)
		os.Exit(1)
	}
}
