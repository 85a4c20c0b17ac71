package game

import (
	"log"

	"github.com/gonewx/lightsout/pkg/sound"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有提示音的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 提示音首次播放时合成并缓存 PCM 数据
//
// audioContext 为 nil 时进入降级模式：所有播放请求被忽略
type AudioManager struct {
	audioContext    *audio.Context              // 音频上下文，可为 nil
	settingsManager *SettingsManager            // 设置管理器（用于读取音量设置）
	pcmCache        map[sound.Cue][]byte        // 提示音 PCM 缓存（满音量）
	players         map[sound.Cue]*audio.Player // 播放器缓存
	enabled         bool                        // 无 SettingsManager 时的音效开关
	volume          float64                     // 无 SettingsManager 时的音量
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（可为 nil，降级为静音）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		pcmCache:        make(map[sound.Cue][]byte),
		players:         make(map[sound.Cue]*audio.Player),
		enabled:         true,
		volume:          defaultSoundVolume,
	}
}

// PlaySound 播放提示音
// 提示音使用 SoundVolume 设置控制音量，单次播放
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(cue sound.Cue) bool {
	if !am.SoundEnabled() || am.audioContext == nil {
		return false
	}

	player := am.getPlayer(cue)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %v: %v", cue, err)
	}
	player.Play()
	return true
}

// SoundEnabled 音效是否开启
func (am *AudioManager) SoundEnabled() bool {
	if am.settingsManager == nil {
		return am.enabled
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// ToggleSound 切换音效开关，返回切换后的状态
func (am *AudioManager) ToggleSound() bool {
	enabled := !am.SoundEnabled()
	am.enabled = enabled
	if am.settingsManager != nil {
		am.settingsManager.SetSoundEnabled(enabled)
	}
	if !enabled {
		for _, player := range am.players {
			player.Pause()
		}
	}
	log.Printf("[AudioManager] Sound enabled: %v", enabled)
	return enabled
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有提示音
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	} else {
		am.volume = clampVolume(volume)
	}
	for _, player := range am.players {
		player.SetVolume(am.getSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// PreloadSounds 预先合成提示音，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(cues ...sound.Cue) {
	for _, cue := range cues {
		am.getPCM(cue)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(cues))
}

// getPlayer 获取或创建提示音播放器
func (am *AudioManager) getPlayer(cue sound.Cue) *audio.Player {
	if player, exists := am.players[cue]; exists {
		return player
	}

	pcm := am.getPCM(cue)
	if pcm == nil {
		return nil
	}

	player := am.audioContext.NewPlayerFromBytes(pcm)
	am.players[cue] = player
	return player
}

// getPCM 获取或合成提示音 PCM 数据（满音量，播放时再调节）
func (am *AudioManager) getPCM(cue sound.Cue) []byte {
	if pcm, exists := am.pcmCache[cue]; exists {
		return pcm
	}

	rate := beep.SampleRate(defaultSampleRate)
	if am.audioContext != nil {
		rate = beep.SampleRate(am.audioContext.SampleRate())
	}

	s, err := sound.Streamer(cue, rate, 1)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to synthesize sound %v: %v", cue, err)
		return nil
	}

	pcm := sound.PCM16(s)
	am.pcmCache[cue] = pcm
	return pcm
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return am.volume
}

// defaultSoundVolume 没有 SettingsManager 时的初始音量
const defaultSoundVolume = 0.8

// defaultSampleRate 音频上下文采样率
const defaultSampleRate = 48000
