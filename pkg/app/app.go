// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/lightsout/pkg/game"
	"github.com/gonewx/lightsout/pkg/scenes"
	"github.com/gonewx/lightsout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowTitle 窗口标题
const WindowTitle = "Lights Out"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空时使用嵌入的默认配置
	ConfigPath string
	// Overrides 命令行参数覆盖项
	Overrides game.Overrides
	// FontPath 字体文件路径，为空时使用内置字体（不含中文字形）
	FontPath string
	// Fullscreen 启动时全屏（与已保存的偏好取或）
	Fullscreen bool
	// Environ 环境变量表，为 nil 时读取进程环境变量
	Environ map[string]string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	boardScene   *scenes.BoardScene
	saved        bool // 已在退出时保存过偏好

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := game.OpenSettings(game.AppName)

	gameConfig, err := game.ResolveGameConfig(cfg.ConfigPath, settings, cfg.Environ, cfg.Overrides)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	locale := game.ResolveLocale(gameConfig.Locale)
	uiStrings, err := game.NewUIStrings(locale)
	if err != nil {
		return nil, fmt.Errorf("界面文本加载失败: %w", err)
	}

	fontSource, err := utils.LoadFontSource(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	session, err := game.NewSession(gameConfig.Board, game.NewRandomSource(gameConfig.Seed))
	if err != nil {
		return nil, fmt.Errorf("棋盘创建失败: %w", err)
	}

	audioContext := audio.NewContext(48000)
	audioManager := game.NewAudioManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	boardScene := scenes.NewBoardScene(session, gameConfig.Layout, uiStrings, fontSource, settings, audioManager)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(boardScene)

	a := &App{
		sceneManager: sceneManager,
		settings:     settings,
		boardScene:   boardScene,
	}
	boardScene.SetLayoutChangeHandler(a.onLayoutChange)

	layout := boardScene.Layout()
	ebiten.SetWindowSize(layout.ScreenWidth, layout.ScreenHeight)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowClosingHandled(true)
	if cfg.Fullscreen || settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started %dx%d board, locale %s", layout.Rows, layout.Cols, locale)
	return a, nil
}

// onLayoutChange 棋盘尺寸变化后调整窗口大小（全屏时由 Layout 缩放）
func (a *App) onLayoutChange(width, height int) {
	if ebiten.IsFullscreen() {
		return
	}
	ebiten.SetWindowSize(width, height)
	log.Printf("[App] Window resized to %dx%d", width, height)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 关闭窗口前保存偏好
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			layout := a.boardScene.Layout()
			ebiten.SetWindowSize(layout.ScreenWidth, layout.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", layout.ScreenWidth, layout.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸随棋盘尺寸变化，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ScreenSize()
}

// ScreenSize 当前棋盘对应的逻辑屏幕尺寸
func (a *App) ScreenSize() (int, int) {
	layout := a.boardScene.Layout()
	return layout.ScreenWidth, layout.ScreenHeight
}

// Shutdown 保存当前场景的偏好，重复调用只保存一次
func (a *App) Shutdown() {
	if a.saved {
		return
	}
	a.saved = true
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: preferences were not saved")
	}
}

var _ ebiten.Game = (*App)(nil)
