package game

import (
	"math"
	"testing"

	"github.com/gonewx/lightsout/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	// 棋盘偏好默认未设置
	if settings.Rows != 0 || settings.Cols != 0 || settings.ChanceStartsOff != nil {
		t.Errorf("board preferences should be unset, got %+v", settings)
	}
	if settings.Locale != "" {
		t.Errorf("Locale: got %q, want empty", settings.Locale)
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	sm, err := NewSettingsManager(openTestGdata(t, "test_lightsout_settings"))
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("Initial SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	sm.SetSoundVolume(0.3)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("After Load() in degraded mode, SoundVolume: got %v, want 0.8",
			sm.GetSettings().SoundVolume)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_lightsout_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetSoundVolume(0.6)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetLocale("zh")
	sm1.SetBoardPreferences(config.BoardConfig{Rows: 7, Cols: 4, ChanceStartsOff: 0})

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.SoundVolume != 0.6 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.Locale != "zh" {
		t.Errorf("Loaded Locale: got %q, want zh", settings.Locale)
	}
	if settings.Rows != 7 || settings.Cols != 4 {
		t.Errorf("Loaded board size: got %dx%d, want 7x4", settings.Rows, settings.Cols)
	}
	// 0 是合法概率，必须与“未设置”区分
	if settings.ChanceStartsOff == nil || *settings.ChanceStartsOff != 0 {
		t.Errorf("Loaded ChanceStartsOff: got %v, want 0", settings.ChanceStartsOff)
	}
}

// TestLoadCorruptSettings 损坏的设置文件回退到默认值
func TestLoadCorruptSettings(t *testing.T) {
	gdataManager := openTestGdata(t, "test_lightsout_corrupt")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("corrupt settings should fall back to defaults, got %+v", sm.GetSettings())
	}

	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestLoadOutOfRangeSettings 手工修改的越界值被修正
func TestLoadOutOfRangeSettings(t *testing.T) {
	gdataManager := openTestGdata(t, "test_lightsout_out_of_range")

	data := []byte("rows: -3\ncols: 6\nchanceStartsOff: 4.5\nsoundVolume: 9\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	s := sm.GetSettings()

	if s.Rows != 0 {
		t.Errorf("Rows: got %d, want 0 (unset)", s.Rows)
	}
	if s.Cols != 6 {
		t.Errorf("Cols: got %d, want 6", s.Cols)
	}
	if s.ChanceStartsOff == nil || *s.ChanceStartsOff != 1 {
		t.Errorf("ChanceStartsOff: got %v, want 1", s.ChanceStartsOff)
	}
	if s.SoundVolume != 1 {
		t.Errorf("SoundVolume: got %v, want 1", s.SoundVolume)
	}
	// 文件中缺少的字段保持默认值
	if !s.SoundEnabled {
		t.Error("SoundEnabled missing from file should default to true")
	}
}

// TestApplyBoardPreferences 只有已设置的偏好覆盖配置
func TestApplyBoardPreferences(t *testing.T) {
	half := 0.5

	tests := []struct {
		name     string
		settings GameSettings
		want     config.BoardConfig
	}{
		{
			name:     "nothing saved",
			settings: GameSettings{},
			want:     config.BoardConfig{Rows: 5, Cols: 5, ChanceStartsOff: 0.35},
		},
		{
			name:     "size only",
			settings: GameSettings{Rows: 3, Cols: 8},
			want:     config.BoardConfig{Rows: 3, Cols: 8, ChanceStartsOff: 0.35},
		},
		{
			name:     "chance only",
			settings: GameSettings{ChanceStartsOff: &half},
			want:     config.BoardConfig{Rows: 5, Cols: 5, ChanceStartsOff: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, _ := NewSettingsManager(nil)
			*sm.GetSettings() = tt.settings

			cfg := config.BoardConfig{Rows: 5, Cols: 5, ChanceStartsOff: 0.35}
			sm.ApplyBoardPreferences(&cfg)
			if cfg != tt.want {
				t.Errorf("got %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

// TestSetBoardPreferencesClamp 记录的棋盘偏好总是合法的
func TestSetBoardPreferencesClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetBoardPreferences(config.BoardConfig{Rows: 0, Cols: -2, ChanceStartsOff: math.NaN()})
	s := sm.GetSettings()
	if s.Rows != 1 || s.Cols != 1 {
		t.Errorf("size: got %dx%d, want 1x1", s.Rows, s.Cols)
	}
	if s.ChanceStartsOff == nil || *s.ChanceStartsOff != 0 {
		t.Errorf("NaN chance should clamp to 0, got %v", s.ChanceStartsOff)
	}
}

// TestSetSoundVolumeClamp 测试 SetSoundVolume 范围校验
func TestSetSoundVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},  // 正常值
		{0.0, 0.0},  // 下限
		{1.0, 1.0},  // 上限
		{-0.5, 0.0}, // 低于下限
		{1.5, 1.0},  // 高于上限
		{-100, 0.0},
		{100, 1.0},
	}

	for _, tt := range tests {
		sm.SetSoundVolume(tt.input)
		if sm.GetSettings().SoundVolume != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v",
				tt.input, sm.GetSettings().SoundVolume, tt.expected)
		}
	}
}

// TestSetToggles 开关类设置
func TestSetToggles(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetSoundEnabled(false)
	if sm.GetSettings().SoundEnabled {
		t.Error("After SetSoundEnabled(false): got true, want false")
	}
	sm.SetSoundEnabled(true)
	if !sm.GetSettings().SoundEnabled {
		t.Error("After SetSoundEnabled(true): got false, want true")
	}

	sm.SetFullscreen(true)
	if !sm.GetSettings().Fullscreen {
		t.Error("After SetFullscreen(true): got false, want true")
	}
	sm.SetFullscreen(false)
	if sm.GetSettings().Fullscreen {
		t.Error("After SetFullscreen(false): got true, want false")
	}
}

// TestClampChance 测试 clampChance 辅助函数
func TestClampChance(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.35, 0.35},
		{0, 0},
		{1, 1},
		{-0.1, 0},
		{1.1, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}

	for _, tt := range tests {
		if got := clampChance(tt.input); got != tt.expected {
			t.Errorf("clampChance(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
