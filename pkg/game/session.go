package game

import (
	"fmt"
	"log"

	"github.com/gonewx/lightsout/pkg/board"
	"github.com/gonewx/lightsout/pkg/config"
)

// Session 一局（或连续多局）游戏的会话
// 独占当前棋盘，由一个前端（GUI 或终端）在单个 goroutine 中驱动。
// 多个会话之间不共享任何棋盘数据。
type Session struct {
	cfg   config.BoardConfig
	src   board.RandomSource
	board board.Board

	// won 只由 Toggle 置位，NewGame 清除
	// 生成时恰好全灭的棋盘仍处于 Playing，可以继续切换
	won bool
}

// NewSession 创建会话并生成第一局棋盘
//
// 参数：
//   - cfg: 棋盘参数
//   - src: 随机源，为 nil 时使用进程级随机源
//
// 返回：
//   - error: 棋盘参数不合法（包装 board.ErrInvalidConfiguration）
func NewSession(cfg config.BoardConfig, src board.RandomSource) (*Session, error) {
	s := &Session{cfg: cfg, src: src}
	if err := s.NewGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGame 用当前参数重新生成棋盘
func (s *Session) NewGame() error {
	b, err := board.New(s.cfg.Rows, s.cfg.Cols, s.cfg.ChanceStartsOff, s.src)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	s.board = b
	s.won = false
	log.Printf("[Session] New game %dx%d (chanceStartsOff=%.2f), %d lights on",
		b.Rows(), b.Cols(), s.cfg.ChanceStartsOff, b.LitCount())
	return nil
}

// Resize 修改棋盘参数并开始新的一局
// 参数不合法时保持原棋盘和参数不变
func (s *Session) Resize(rows, cols int, chanceStartsOff float64) error {
	if err := board.Validate(rows, cols, chanceStartsOff); err != nil {
		return fmt.Errorf("failed to resize session: %w", err)
	}
	s.cfg = config.BoardConfig{Rows: rows, Cols: cols, ChanceStartsOff: chanceStartsOff}
	return s.NewGame()
}

// Toggle 切换 (row, col) 及其邻居
//
// 已获胜时忽略切换（胜利是终止状态，只能通过 NewGame 重新开始）。
//
// 返回：
//   - applied: 是否执行了切换
//   - won: 切换后是否获胜
func (s *Session) Toggle(row, col int) (applied, won bool) {
	if s.won {
		log.Printf("[Session] Ignoring toggle (%d,%d): game already won", row, col)
		return false, true
	}

	s.board, won = s.board.Toggle(row, col)
	s.won = won
	if won {
		log.Printf("[Session] Board cleared with toggle (%d,%d)", row, col)
	}
	return true, won
}

// Board 返回当前棋盘（值拷贝，可安全持有）
func (s *Session) Board() board.Board {
	return s.board
}

// Won 本局是否已通过切换获胜
func (s *Session) Won() bool {
	return s.won
}

// Status 返回本局状态（Playing 直到某次切换熄灭所有格子）
func (s *Session) Status() board.Status {
	if s.won {
		return board.StatusWon
	}
	return board.StatusPlaying
}

// Config 返回当前棋盘参数
func (s *Session) Config() config.BoardConfig {
	return s.cfg
}
