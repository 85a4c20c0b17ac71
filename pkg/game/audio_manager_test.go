package game

import (
	"testing"

	"github.com/gonewx/lightsout/pkg/sound"
)

// TestAudioManagerDegraded 没有音频上下文时播放请求被忽略
func TestAudioManagerDegraded(t *testing.T) {
	am := NewAudioManager(nil, nil)

	if am.PlaySound(sound.CueToggle) {
		t.Error("PlaySound without audio context should return false")
	}
	if !am.SoundEnabled() {
		t.Error("sound should be enabled by default")
	}
	if am.GetSoundVolume() != 0.8 {
		t.Errorf("default volume: got %v, want 0.8", am.GetSoundVolume())
	}
}

// TestAudioManagerToggleSound 开关状态写回设置
func TestAudioManagerToggleSound(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if am.ToggleSound() {
		t.Error("first ToggleSound should disable sound")
	}
	if sm.GetSettings().SoundEnabled {
		t.Error("SoundEnabled should be written back to settings")
	}
	if am.PlaySound(sound.CueWin) {
		t.Error("PlaySound should return false while sound is disabled")
	}
	if !am.ToggleSound() {
		t.Error("second ToggleSound should enable sound")
	}

	// 没有 SettingsManager 时也能切换
	standalone := NewAudioManager(nil, nil)
	if standalone.ToggleSound() || standalone.SoundEnabled() {
		t.Error("ToggleSound without settings should disable sound")
	}
}

// TestAudioManagerSetSoundVolume 音量写回设置并被限制在范围内
func TestAudioManagerSetSoundVolume(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	am.SetSoundVolume(0.25)
	if am.GetSoundVolume() != 0.25 {
		t.Errorf("volume: got %v, want 0.25", am.GetSoundVolume())
	}
	am.SetSoundVolume(3)
	if am.GetSoundVolume() != 1 {
		t.Errorf("volume: got %v, want 1", am.GetSoundVolume())
	}
}

// TestAudioManagerPreload 预加载合成并缓存 PCM
func TestAudioManagerPreload(t *testing.T) {
	am := NewAudioManager(nil, nil)
	am.PreloadSounds(sound.CueToggle, sound.CueWin, sound.Cue(42))

	if len(am.pcmCache) != 2 {
		t.Fatalf("pcm cache: got %d entries, want 2", len(am.pcmCache))
	}
	if len(am.pcmCache[sound.CueWin]) <= len(am.pcmCache[sound.CueToggle]) {
		t.Error("win cue should be longer than toggle cue")
	}

	cached := am.getPCM(sound.CueToggle)
	if &cached[0] != &am.pcmCache[sound.CueToggle][0] {
		t.Error("getPCM should return the cached buffer")
	}
}
