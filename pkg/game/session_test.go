package game

import (
	"errors"
	"testing"

	"github.com/gonewx/lightsout/pkg/board"
	"github.com/gonewx/lightsout/pkg/config"
)

// constSource 每次都返回同一个值
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestNewSession(t *testing.T) {
	cfg := config.BoardConfig{Rows: 3, Cols: 4, ChanceStartsOff: 0.35}

	s, err := NewSession(cfg, constSource(0.9))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	b := s.Board()
	if b.Rows() != 3 || b.Cols() != 4 {
		t.Errorf("board size: got %dx%d, want 3x4", b.Rows(), b.Cols())
	}
	// 0.9 >= 0.35，所有格子点亮
	if b.LitCount() != 12 {
		t.Errorf("lit count: got %d, want 12", b.LitCount())
	}
	if s.Won() || s.Status() != board.StatusPlaying {
		t.Errorf("new session should be playing, got %v", s.Status())
	}
	if s.Config() != cfg {
		t.Errorf("Config(): got %+v, want %+v", s.Config(), cfg)
	}
}

func TestNewSessionInvalid(t *testing.T) {
	_, err := NewSession(config.BoardConfig{Rows: 0, Cols: 3, ChanceStartsOff: 0.5}, nil)
	if !errors.Is(err, board.ErrInvalidConfiguration) {
		t.Errorf("got %v, want ErrInvalidConfiguration", err)
	}
}

// TestSessionPlayToWin 1x1 全亮棋盘，一次切换获胜，之后的切换被忽略
func TestSessionPlayToWin(t *testing.T) {
	s, err := NewSession(config.BoardConfig{Rows: 1, Cols: 1, ChanceStartsOff: 0}, constSource(0.5))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	held := s.Board()

	applied, won := s.Toggle(0, 0)
	if !applied || !won {
		t.Fatalf("first toggle: applied=%v won=%v, want true/true", applied, won)
	}
	if s.Status() != board.StatusWon {
		t.Errorf("status: got %v, want won", s.Status())
	}
	if !held.IsLit(0, 0) {
		t.Error("previously returned board was mutated by Toggle")
	}

	applied, won = s.Toggle(0, 0)
	if applied || !won {
		t.Errorf("toggle after win: applied=%v won=%v, want false/true", applied, won)
	}
	if !s.Won() {
		t.Error("toggle after win changed the board")
	}

	if err := s.NewGame(); err != nil {
		t.Fatalf("NewGame error: %v", err)
	}
	if s.Won() {
		t.Error("NewGame should leave the won state")
	}
}

// TestSessionStartsPlayingWhenAllOff 生成时全灭的棋盘不算获胜，可以继续切换
func TestSessionStartsPlayingWhenAllOff(t *testing.T) {
	s, err := NewSession(config.BoardConfig{Rows: 1, Cols: 1, ChanceStartsOff: 1}, constSource(0.5))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	if s.Board().LitCount() != 0 {
		t.Fatalf("chanceStartsOff=1 should leave every cell off, got %d lit", s.Board().LitCount())
	}
	if s.Won() || s.Status() != board.StatusPlaying {
		t.Errorf("all-off initial board: got %v, want playing", s.Status())
	}

	applied, won := s.Toggle(0, 0)
	if !applied || won {
		t.Errorf("toggle on all-off board: applied=%v won=%v, want true/false", applied, won)
	}
	if !s.Board().IsLit(0, 0) {
		t.Error("toggle should light the only cell")
	}

	applied, won = s.Toggle(0, 0)
	if !applied || !won || !s.Won() {
		t.Errorf("second toggle: applied=%v won=%v, want true/true", applied, won)
	}

	if err := s.NewGame(); err != nil {
		t.Fatalf("NewGame error: %v", err)
	}
	if s.Status() != board.StatusPlaying {
		t.Errorf("after NewGame: got %v, want playing", s.Status())
	}
}

func TestSessionToggleOutOfRange(t *testing.T) {
	s, err := NewSession(config.BoardConfig{Rows: 2, Cols: 2, ChanceStartsOff: 0}, constSource(0.5))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	before := s.Board()
	applied, won := s.Toggle(10, -10)
	if !applied || won {
		t.Errorf("off-grid toggle: applied=%v won=%v, want true/false", applied, won)
	}
	if !s.Board().Equal(before) {
		t.Error("off-grid toggle changed the board")
	}
}

func TestSessionResize(t *testing.T) {
	s, err := NewSession(config.BoardConfig{Rows: 2, Cols: 2, ChanceStartsOff: 0.5}, constSource(0.1))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	if err := s.Resize(4, 6, 0); err != nil {
		t.Fatalf("Resize error: %v", err)
	}
	if s.Board().Rows() != 4 || s.Board().Cols() != 6 {
		t.Errorf("after resize: got %dx%d, want 4x6", s.Board().Rows(), s.Board().Cols())
	}
	if s.Board().LitCount() != 24 {
		t.Errorf("chanceStartsOff=0 should light every cell, got %d", s.Board().LitCount())
	}

	if err := s.Resize(-1, 6, 0); !errors.Is(err, board.ErrInvalidConfiguration) {
		t.Errorf("invalid resize: got %v, want ErrInvalidConfiguration", err)
	}
	if s.Config().Rows != 4 {
		t.Errorf("invalid resize changed config: %+v", s.Config())
	}
}

// TestSessionsAreIndependent 两个会话不共享棋盘
func TestSessionsAreIndependent(t *testing.T) {
	cfg := config.BoardConfig{Rows: 3, Cols: 3, ChanceStartsOff: 1}
	a, err := NewSession(cfg, constSource(0.5))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	b, err := NewSession(cfg, constSource(0.5))
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}

	a.Toggle(1, 1)
	if b.Board().LitCount() != 0 {
		t.Errorf("toggling session a changed session b: %d lit", b.Board().LitCount())
	}
}
