package game

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/lightsout/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局偏好设置
// 只保存偏好（棋盘尺寸、声音、语言、全屏），从不保存棋盘本身
type GameSettings struct {
	// 棋盘偏好，0 / nil 表示未设置（沿用配置文件）
	Rows            int      `yaml:"rows,omitempty"`
	Cols            int      `yaml:"cols,omitempty"`
	ChanceStartsOff *float64 `yaml:"chanceStartsOff,omitempty"`

	// 音频设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 界面语言，空表示跟随系统
	Locale string `yaml:"locale,omitempty"`

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方统一处理，加载失败只记录警告并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或设置不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填默认值，旧版本文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sanitizeSettings(loaded)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// ApplyBoardPreferences 用已保存的棋盘偏好覆盖配置
// 未设置的字段保持配置文件中的值
func (sm *SettingsManager) ApplyBoardPreferences(cfg *config.BoardConfig) {
	s := sm.settings
	if s.Rows > 0 {
		cfg.Rows = s.Rows
	}
	if s.Cols > 0 {
		cfg.Cols = s.Cols
	}
	if s.ChanceStartsOff != nil {
		cfg.ChanceStartsOff = *s.ChanceStartsOff
	}
}

// SetBoardPreferences 记录当前棋盘参数
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetBoardPreferences(cfg config.BoardConfig) {
	sm.settings.Rows = max(cfg.Rows, 1)
	sm.settings.Cols = max(cfg.Cols, 1)
	chance := clampChance(cfg.ChanceStartsOff)
	sm.settings.ChanceStartsOff = &chance
}

// SetSoundVolume 设置音效音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetLocale 设置界面语言
func (sm *SettingsManager) SetLocale(locale string) {
	sm.settings.Locale = locale
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// sanitizeSettings 修正从磁盘读取的越界值
func sanitizeSettings(s *GameSettings) {
	s.SoundVolume = clampVolume(s.SoundVolume)
	if s.Rows < 0 {
		s.Rows = 0
	}
	if s.Cols < 0 {
		s.Cols = 0
	}
	if s.ChanceStartsOff != nil {
		chance := clampChance(*s.ChanceStartsOff)
		s.ChanceStartsOff = &chance
	}
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

// clampChance 将概率限制在 [0, 1]，NaN 视为 0
func clampChance(chance float64) float64 {
	if math.IsNaN(chance) {
		return 0
	}
	return clampVolume(chance)
}
