// lightsout-term 终端版 Lights Out
//
// 用法：
//
//	go run ./cmd/lightsout-term [-rows 5] [-cols 5] [-chance-off 0.35] [-seed 42] [-mute] [-log lightsout.log]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/lightsout/data"
	"github.com/gonewx/lightsout/pkg/embedded"
	"github.com/gonewx/lightsout/pkg/game"
	"github.com/gonewx/lightsout/pkg/termui"
)

var (
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	mute       = flag.Bool("mute", false, "关闭提示音")
	logPath    = flag.String("log", "", "日志文件路径（终端被游戏占用，默认不输出日志）")
)

func main() {
	overrides := game.OverrideFlags(flag.CommandLine)
	flag.Parse()

	// stdout 属于游戏画面，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(data.FS)

	settings := game.OpenSettings(game.AppName)
	gameConfig, err := game.ResolveGameConfig(*configPath, settings, nil, overrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	uiStrings, err := game.NewUIStrings(game.ResolveLocale(gameConfig.Locale))
	if err != nil {
		fmt.Fprintf(os.Stderr, "界面文本加载失败: %v\n", err)
		os.Exit(1)
	}

	session, err := game.NewSession(gameConfig.Board, game.NewRandomSource(gameConfig.Seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "棋盘创建失败: %v\n", err)
		os.Exit(1)
	}

	var sounder termui.Sounder
	if !*mute {
		speakerSounder, err := termui.NewSpeakerSounder(settings.GetSettings().SoundVolume)
		if err != nil {
			// 没有音频设备时继续游戏
			log.Printf("[Term] Warning: %v (continuing without sound)", err)
		} else {
			defer speakerSounder.Close()
			sounder = speakerSounder
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	// 崩溃时先恢复终端，再打印堆栈
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "lightsout crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	g := termui.NewGame(screen, session, uiStrings, settings, sounder)
	g.Run()
	screen.Fini()
	g.SaveOnExit()
}
