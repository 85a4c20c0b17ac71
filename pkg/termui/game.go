// Package termui 终端版 Lights Out 前端
//
// 与图形版共用 game.Session 和 UIStrings，只负责终端绘制和按键/鼠标输入。
// 事件由独立 goroutine 从 tcell 读取，经 channel 交给持有 Session 的主循环，
// Session 始终只在主循环中访问。
package termui

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/lightsout/pkg/game"
	"github.com/gonewx/lightsout/pkg/sound"
	"github.com/mattn/go-runewidth"
)

// 格子尺寸（字符单元）
const (
	cellWidth  = 3 // 每个格子占用的列数
	cellStride = 4 // 相邻格子左边缘的列距（留 1 列给光标括号）
	rowStride  = 2 // 相邻格子的行距
	gridTop    = 2 // 标题下方留一行空白
)

// 霓虹配色（与图形版一致）
var (
	colorNeonOrange = tcell.NewRGBColor(255, 128, 32)
	colorNeonBlue   = tcell.NewRGBColor(48, 196, 255)
	colorUnlit      = tcell.NewRGBColor(60, 60, 70)
	colorDim        = tcell.NewRGBColor(140, 140, 150)
)

var (
	styleTitleLights = tcell.StyleDefault.Foreground(colorNeonOrange).Bold(true)
	styleTitleOut    = tcell.StyleDefault.Foreground(colorNeonBlue).Bold(true)
	styleLit         = tcell.StyleDefault.Foreground(colorNeonOrange)
	styleUnlit       = tcell.StyleDefault.Foreground(colorUnlit)
	styleCursor      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHint        = tcell.StyleDefault.Foreground(colorDim)
)

// Game 终端游戏
type Game struct {
	screen   tcell.Screen
	session  *game.Session
	strings  *game.UIStrings
	settings *game.SettingsManager
	sounder  Sounder

	cursorRow, cursorCol int
	soundOn              bool
	notice               string

	// 上一次鼠标事件的按键状态，只在按下的瞬间切换
	lastButtons tcell.ButtonMask
}

// NewGame 创建终端游戏
//
// 参数：
//   - screen: 已初始化的 tcell 屏幕
//   - session: 游戏会话
//   - strings: 界面文本
//   - settings: 偏好设置（可为 nil）
//   - sounder: 提示音播放器（可为 nil，表示静音）
func NewGame(screen tcell.Screen, session *game.Session, strings *game.UIStrings, settings *game.SettingsManager, sounder Sounder) *Game {
	if sounder == nil {
		sounder = muteSounder{}
	}
	soundOn := true
	if settings != nil {
		soundOn = settings.GetSettings().SoundEnabled
	}

	return &Game{
		screen:   screen,
		session:  session,
		strings:  strings,
		settings: settings,
		sounder:  sounder,
		soundOn:  soundOn,
	}
}

// Run 运行主循环，直到玩家退出
//
// 调用方负责在返回后调用 screen.Fini()。
func (g *Game) Run() {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		// 屏幕关闭后 range events 随之结束
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	g.Draw()
	for ev := range events {
		if !g.HandleEvent(ev) {
			return
		}
		g.Draw()
	}
}

// HandleEvent 处理一个输入事件，返回 false 表示退出
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev)

	case *tcell.EventMouse:
		g.handleMouse(ev)

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)
	case tcell.KeyEnter:
		g.toggle(g.cursorRow, g.cursorCol)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'k':
			g.moveCursor(-1, 0)
		case 'j':
			g.moveCursor(1, 0)
		case 'h':
			g.moveCursor(0, -1)
		case 'l':
			g.moveCursor(0, 1)
		case ' ':
			g.toggle(g.cursorRow, g.cursorCol)
		case 'n', 'N':
			g.newGame()
		case 'm', 'M':
			g.toggleSound()
		case 't', 'T':
			g.cycleLocale()
		}
	}
	return true
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && g.lastButtons&tcell.Button1 == 0
	g.lastButtons = buttons
	if !pressed {
		return
	}

	x, y := ev.Position()
	row, col, ok := g.cellAt(x, y)
	if !ok {
		return
	}
	g.cursorRow, g.cursorCol = row, col
	g.toggle(row, col)
}

// moveCursor 移动光标，超出棋盘时停在边缘
func (g *Game) moveCursor(dRow, dCol int) {
	cfg := g.session.Config()
	g.cursorRow = min(max(g.cursorRow+dRow, 0), cfg.Rows-1)
	g.cursorCol = min(max(g.cursorCol+dCol, 0), cfg.Cols-1)
}

func (g *Game) toggle(row, col int) {
	applied, won := g.session.Toggle(row, col)
	if !applied {
		return
	}
	g.notice = ""
	if won {
		log.Printf("[Term] Board cleared")
		g.play(sound.CueWin)
		return
	}
	g.play(sound.CueToggle)
}

func (g *Game) newGame() {
	if err := g.session.NewGame(); err != nil {
		log.Printf("[Term] Warning: failed to start new game: %v", err)
		return
	}
	g.notice = ""
	g.play(sound.CueNewGame)
}

// toggleSound 开关提示音并记录到偏好
func (g *Game) toggleSound() {
	g.soundOn = !g.soundOn
	if g.settings != nil {
		g.settings.SetSoundEnabled(g.soundOn)
	}
	if g.soundOn {
		g.notice = g.strings.Get(game.StrSoundOn)
	} else {
		g.notice = g.strings.Get(game.StrSoundOff)
	}
}

// cycleLocale 切换界面语言并记录到偏好
func (g *Game) cycleLocale() {
	ui, err := game.CycleLocale(g.strings, g.settings)
	if err != nil {
		log.Printf("[Term] Warning: failed to switch locale: %v", err)
		return
	}
	g.strings = ui
	g.notice = ui.Get(game.StrLanguage)
	g.screen.Sync()
}

func (g *Game) play(cue sound.Cue) {
	if g.soundOn {
		g.sounder.Play(cue)
	}
}

// SaveOnExit 保存偏好（声音开关和界面语言）
func (g *Game) SaveOnExit() {
	if g.settings == nil {
		return
	}
	if err := g.settings.Save(); err != nil {
		log.Printf("[Term] Warning: failed to save settings: %v", err)
	}
}

// gridOrigin 返回棋盘左上角格子的屏幕坐标（水平居中）
func (g *Game) gridOrigin() (int, int) {
	width, _ := g.screen.Size()
	cols := g.session.Config().Cols
	gridWidth := cols*cellStride - (cellStride - cellWidth)
	left := max((width-gridWidth)/2, 1)
	return left, gridTop
}

// cellAt 把屏幕坐标转换为格子坐标，落在格子间隙中返回 false
func (g *Game) cellAt(x, y int) (row, col int, ok bool) {
	left, top := g.gridOrigin()
	dx, dy := x-left, y-top
	if dx < 0 || dy < 0 || dx%cellStride >= cellWidth || dy%rowStride != 0 {
		return 0, 0, false
	}
	row, col = dy/rowStride, dx/cellStride
	if !g.session.Board().Contains(row, col) {
		return 0, 0, false
	}
	return row, col, true
}

// Draw 绘制整个屏幕
func (g *Game) Draw() {
	g.screen.Clear()
	width, _ := g.screen.Size()

	lights := g.strings.Get(game.StrTitleLights)
	out := g.strings.Get(game.StrTitleOut)
	titleWidth := runewidth.StringWidth(lights) + 1 + runewidth.StringWidth(out)
	x := max((width-titleWidth)/2, 0)
	x = drawText(g.screen, x, 0, lights, styleTitleLights)
	drawText(g.screen, x+1, 0, out, styleTitleOut)

	cfg := g.session.Config()
	statusY := gridTop + cfg.Rows*rowStride

	if g.session.Won() {
		g.drawWinner(width, gridTop+(cfg.Rows*rowStride-1)/2)
		g.drawCentered(width, statusY, g.strings.Get(game.StrTermNewGame), styleStatus)
	} else {
		g.drawGrid()
		status := g.strings.Sprintf(game.StrStatusLit, g.session.Board().LitCount())
		if g.notice != "" {
			status = g.notice
		}
		g.drawCentered(width, statusY, status, styleStatus)
	}
	g.drawCentered(width, statusY+1, g.strings.Get(game.StrTermControls), styleHint)

	g.screen.Show()
}

func (g *Game) drawGrid() {
	b := g.session.Board()
	left, top := g.gridOrigin()

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			x := left + col*cellStride
			y := top + row*rowStride
			ch, style := '░', styleUnlit
			if b.IsLit(row, col) {
				ch, style = '█', styleLit
			}
			for i := 0; i < cellWidth; i++ {
				g.screen.SetContent(x+i, y, ch, nil, style)
			}
			if row == g.cursorRow && col == g.cursorCol {
				g.screen.SetContent(x-1, y, '[', nil, styleCursor)
				g.screen.SetContent(x+cellWidth, y, ']', nil, styleCursor)
			}
		}
	}
}

// drawWinner 绘制 "YOU WIN!" 横幅
func (g *Game) drawWinner(width, y int) {
	you := g.strings.Get(game.StrWinYou)
	win := g.strings.Get(game.StrWinWin)
	total := runewidth.StringWidth(you) + 1 + runewidth.StringWidth(win)
	x := max((width-total)/2, 0)
	x = drawText(g.screen, x, y, you, styleTitleLights)
	drawText(g.screen, x+1, y, win, styleTitleOut)
}

func (g *Game) drawCentered(width, y int, s string, style tcell.Style) {
	x := max((width-runewidth.StringWidth(s))/2, 0)
	drawText(g.screen, x, y, s, style)
}

// drawText 从 (x, y) 开始绘制文本，返回文本结束后的列
// 宽字符（中文）占两列
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
