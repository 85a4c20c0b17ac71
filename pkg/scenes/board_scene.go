package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/gonewx/lightsout/pkg/config"
	"github.com/gonewx/lightsout/pkg/game"
	"github.com/gonewx/lightsout/pkg/sound"
	"github.com/gonewx/lightsout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 棋盘尺寸调整范围（-/= 键）
const (
	MinBoardSize = 1
	MaxBoardSize = 10
)

// volumeStep [ / ] 键每次调整的音量
const volumeStep = 0.1

// noticeDuration 临时提示（例如 "sound off"）显示的秒数
const noticeDuration = 1.5

// introDuration 开局后显示操作说明的秒数
const introDuration = 4.0

// bannerFadeIn 获胜横幅淡入的秒数
const bannerFadeIn = 0.6

// 字号
const (
	titleFontSize  = 40
	bannerFontSize = 64
	hintFontSize   = 16
)

// 霓虹配色
var (
	backgroundColor = color.RGBA{R: 14, G: 14, B: 24, A: 255}
	neonOrange      = color.RGBA{R: 255, G: 128, B: 32, A: 255}
	neonBlue        = color.RGBA{R: 48, G: 196, B: 255, A: 255}
	litCellColor    = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	litGlowColor    = color.RGBA{R: 255, G: 128, B: 32, A: 90}
	unlitCellColor  = color.RGBA{R: 38, G: 40, B: 58, A: 255}
	hoverColor      = color.RGBA{R: 48, G: 196, B: 255, A: 200}
	hintColor       = color.RGBA{R: 170, G: 170, B: 190, A: 255}
)

// BoardScene 棋盘场景
// 绘制标题和网格，处理点击、快捷键；获胜后以 "YOU WIN!" 横幅代替网格
type BoardScene struct {
	session  *game.Session
	settings *game.SettingsManager // 可为 nil
	audio    *game.AudioManager    // 可为 nil
	strings  *game.UIStrings

	layoutConfig config.LayoutConfig
	layout       config.GridLayout

	titleFace  *text.GoTextFace
	bannerFace *text.GoTextFace
	hintFace   *text.GoTextFace

	// 悬停的格子，用于高亮受影响的格子
	hoverRow, hoverCol int
	hovering           bool

	elapsed     float64 // 场景运行时间（秒），用于横幅闪烁
	wonAt       float64 // 获胜时的 elapsed，用于横幅淡入
	notice      string  // 临时提示
	noticeTimer float64

	// resized 玩家调整过棋盘尺寸，退出时才把尺寸写入偏好
	resized bool

	// tapToRestart 移动端没有键盘，获胜后轻触屏幕开始新游戏
	tapToRestart bool

	// onLayoutChange 棋盘尺寸变化后通知外部调整窗口大小
	onLayoutChange func(width, height int)
}

// NewBoardScene 创建棋盘场景
//
// 参数：
//   - session: 游戏会话（必需）
//   - layoutConfig: 网格布局参数
//   - strings: 界面文本
//   - fontSource: 字体源
//   - settings: 设置管理器（可为 nil，此时不保存偏好）
//   - audio: 音频管理器（可为 nil，此时静音）
func NewBoardScene(
	session *game.Session,
	layoutConfig config.LayoutConfig,
	strings *game.UIStrings,
	fontSource *text.GoTextFaceSource,
	settings *game.SettingsManager,
	audio *game.AudioManager,
) *BoardScene {
	s := &BoardScene{
		session:      session,
		settings:     settings,
		audio:        audio,
		strings:      strings,
		layoutConfig: layoutConfig,
		titleFace:    utils.NewFace(fontSource, titleFontSize),
		bannerFace:   utils.NewFace(fontSource, bannerFontSize),
		hintFace:     utils.NewFace(fontSource, hintFontSize),
		tapToRestart: utils.IsMobile(),
	}
	s.relayout()

	if audio != nil {
		audio.PreloadSounds(sound.CueToggle, sound.CueWin, sound.CueNewGame)
	}

	log.Printf("[BoardScene] Created %dx%d board scene (%dx%d screen)",
		s.layout.Rows, s.layout.Cols, s.layout.ScreenWidth, s.layout.ScreenHeight)
	return s
}

// SetLayoutChangeHandler 设置棋盘尺寸变化的回调
func (s *BoardScene) SetLayoutChangeHandler(fn func(width, height int)) {
	s.onLayoutChange = fn
}

// Layout 返回当前网格布局
func (s *BoardScene) Layout() config.GridLayout {
	return s.layout
}

// Update 处理输入
func (s *BoardScene) Update(deltaTime float64) {
	s.tick(deltaTime)

	input := utils.GetInputState()
	s.updateHover(input.X, input.Y)
	if input.JustPressed {
		s.handleClick(input.X, input.Y)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.newGame()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.toggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.adjustVolume(-volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.adjustVolume(volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		s.cycleLocale()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		s.resizeBy(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		s.resizeBy(1)
	}
}

// tick 推进计时器
func (s *BoardScene) tick(deltaTime float64) {
	s.elapsed += deltaTime
	if s.noticeTimer > 0 {
		s.noticeTimer -= deltaTime
		if s.noticeTimer <= 0 {
			s.notice = ""
		}
	}
}

// updateHover 记录指针下方的格子
func (s *BoardScene) updateHover(x, y int) {
	s.hoverRow, s.hoverCol, s.hovering = utils.MouseToGridCoords(x, y, s.layout)
	if s.session.Won() {
		s.hovering = false
	}
}

// handleClick 点击格子切换灯；获胜后点击无效（按 N 开始新游戏，移动端轻触重开）
func (s *BoardScene) handleClick(x, y int) {
	if s.session.Won() {
		if s.tapToRestart {
			s.newGame()
		}
		return
	}
	row, col, ok := utils.MouseToGridCoords(x, y, s.layout)
	if !ok {
		return
	}

	applied, won := s.session.Toggle(row, col)
	if !applied {
		return
	}
	if won {
		log.Printf("[BoardScene] Player won")
		s.wonAt = s.elapsed
		s.playSound(sound.CueWin)
		return
	}
	s.playSound(sound.CueToggle)
}

// newGame 用当前尺寸重新开始
func (s *BoardScene) newGame() {
	if err := s.session.NewGame(); err != nil {
		log.Printf("[BoardScene] Warning: Failed to start new game: %v", err)
		return
	}
	s.playSound(sound.CueNewGame)
}

// toggleSound 切换音效开关
func (s *BoardScene) toggleSound() {
	if s.audio == nil {
		return
	}
	if s.audio.ToggleSound() {
		s.showNotice(s.strings.Get(game.StrSoundOn))
	} else {
		s.showNotice(s.strings.Get(game.StrSoundOff))
	}
}

// adjustVolume 调整音量并显示当前百分比
func (s *BoardScene) adjustVolume(delta float64) {
	if s.audio == nil {
		return
	}
	s.audio.SetSoundVolume(s.audio.GetSoundVolume() + delta)
	percent := int(math.Round(s.audio.GetSoundVolume() * 100))
	s.showNotice(s.strings.Sprintf(game.StrVolume, percent))
}

// cycleLocale 切换界面语言（中文需要 -font 指定含中文字形的字体）
func (s *BoardScene) cycleLocale() {
	ui, err := game.CycleLocale(s.strings, s.settings)
	if err != nil {
		log.Printf("[BoardScene] Warning: Failed to switch locale: %v", err)
		return
	}
	s.strings = ui
	s.showNotice(ui.Get(game.StrLanguage))
}

// resizeBy 行列同时增减 delta
// 只在 [MinBoardSize, MaxBoardSize] 内步进；配置给出的更大棋盘可以逐步缩小，但不会再变大
func (s *BoardScene) resizeBy(delta int) {
	cfg := s.session.Config()
	rows := stepSize(cfg.Rows, delta)
	cols := stepSize(cfg.Cols, delta)
	if rows == cfg.Rows && cols == cfg.Cols {
		return
	}

	if err := s.session.Resize(rows, cols, cfg.ChanceStartsOff); err != nil {
		log.Printf("[BoardScene] Warning: Failed to resize board: %v", err)
		return
	}
	s.resized = true
	s.relayout()
	s.playSound(sound.CueNewGame)

	if s.onLayoutChange != nil {
		s.onLayoutChange(s.layout.ScreenWidth, s.layout.ScreenHeight)
	}
}

// relayout 根据会话中的棋盘尺寸重新计算布局
func (s *BoardScene) relayout() {
	cfg := s.session.Config()
	s.layout = config.NewGridLayout(s.layoutConfig, cfg.Rows, cfg.Cols)
}

func (s *BoardScene) showNotice(msg string) {
	s.notice = msg
	s.noticeTimer = noticeDuration
}

func (s *BoardScene) playSound(cue sound.Cue) {
	if s.audio != nil {
		s.audio.PlaySound(cue)
	}
}

// SaveOnExit 保存偏好（从不保存棋盘本身）
// 棋盘参数只在玩家调整过尺寸时保存，命令行和环境变量的临时覆盖不会写入偏好
func (s *BoardScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if s.resized {
		s.settings.SetBoardPreferences(s.session.Config())
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[BoardScene] Warning: Failed to save settings: %v", err)
		return false
	}
	return true
}

// Draw 绘制场景
func (s *BoardScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.session.Won() {
		s.drawWinBanner(screen)
	} else {
		s.drawTitle(screen)
		s.drawGrid(screen)
	}
	s.drawFooter(screen)
}

// drawTitle 两行霓虹标题 "Lights" / "Out"
func (s *BoardScene) drawTitle(screen *ebiten.Image) {
	cx := float64(s.layout.ScreenWidth) / 2
	utils.DrawCenteredText(screen, s.strings.Get(game.StrTitleLights), s.titleFace, cx, config.TitleBaselineY-24, neonOrange)
	utils.DrawCenteredText(screen, s.strings.Get(game.StrTitleOut), s.titleFace, cx, config.TitleBaselineY+24, neonBlue)
}

// drawGrid 绘制所有格子，悬停时高亮会被切换的格子
func (s *BoardScene) drawGrid(screen *ebiten.Image) {
	b := s.session.Board()
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			x, y, size := s.layout.CellRect(row, col)
			if b.IsLit(row, col) {
				vector.DrawFilledRect(screen, float32(x-3), float32(y-3), float32(size+6), float32(size+6), litGlowColor, true)
				vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), litCellColor, true)
			} else {
				vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), unlitCellColor, true)
			}
		}
	}

	if !s.hovering {
		return
	}
	for _, rc := range b.AffectedCells(s.hoverRow, s.hoverCol) {
		x, y, size := s.layout.CellRect(rc[0], rc[1])
		vector.StrokeRect(screen, float32(x), float32(y), float32(size), float32(size), 2, hoverColor, true)
	}
}

// drawWinBanner 获胜横幅 "YOU WIN!"，两个单词分别用橙色和蓝色
func (s *BoardScene) drawWinBanner(screen *ebiten.Image) {
	you := s.strings.Get(game.StrWinYou)
	win := s.strings.Get(game.StrWinWin)

	space := utils.MeasureText(" ", s.bannerFace)
	youW := utils.MeasureText(you, s.bannerFace)
	winW := utils.MeasureText(win, s.bannerFace)
	left := (float64(s.layout.ScreenWidth) - (youW + space + winW)) / 2
	cy := float64(s.layout.ScreenHeight) / 2

	// 先淡入，再轻微呼吸
	appear := utils.EaseOutCubic(min((s.elapsed-s.wonAt)/bannerFadeIn, 1))
	pulse := appear * utils.Lerp(0.85, 1, (math.Sin(s.elapsed*4)+1)/2)
	utils.DrawCenteredText(screen, you, s.bannerFace, left+youW/2, cy, scaleAlpha(neonOrange, pulse))
	utils.DrawCenteredText(screen, win, s.bannerFace, left+youW+space+winW/2, cy, scaleAlpha(neonBlue, pulse))
}

// drawFooter 底部状态行和快捷键提示
func (s *BoardScene) drawFooter(screen *ebiten.Image) {
	cx := float64(s.layout.ScreenWidth) / 2
	h := float64(s.layout.ScreenHeight)

	status := s.notice
	if status == "" {
		if s.session.Won() && s.tapToRestart {
			status = s.strings.Get(game.StrTapNewGame)
		} else if s.session.Won() {
			status = s.strings.Get(game.StrTermNewGame)
		} else if s.elapsed < introDuration {
			status = s.strings.Get(game.StrHintControls)
		} else {
			status = s.strings.Sprintf(game.StrStatusLit, s.session.Board().LitCount())
		}
	}
	utils.DrawCenteredText(screen, status, s.hintFace, cx, h-40, hintColor)
	if !s.tapToRestart {
		utils.DrawCenteredText(screen, s.strings.Get(game.StrHintNewGame), s.hintFace, cx, h-18, hintColor)
	}
}

// stepSize 尺寸 n 增减 delta 后的值，越出 [MinBoardSize, MaxBoardSize] 时保持不变
// n 本身大于 MaxBoardSize 时只允许缩小
func stepSize(n, delta int) int {
	next := n + delta
	if next < MinBoardSize || (delta > 0 && next > MaxBoardSize) {
		return n
	}
	return next
}

// scaleAlpha 按比例缩放颜色（预乘 alpha）
func scaleAlpha(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}
