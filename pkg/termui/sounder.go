package termui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gonewx/lightsout/pkg/sound"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// sampleRate 终端提示音采样率
const sampleRate = beep.SampleRate(44100)

// Sounder 播放提示音
type Sounder interface {
	Play(cue sound.Cue)
}

// muteSounder 不发声（-mute 或音频设备不可用）
type muteSounder struct{}

func (muteSounder) Play(sound.Cue) {}

// SpeakerSounder 通过 beep/speaker 播放合成的提示音
type SpeakerSounder struct {
	mu     sync.Mutex
	volume float64
	closed bool
}

// NewSpeakerSounder 初始化扬声器
//
// 参数：
//   - volume: 音量 0.0 ~ 1.0
//
// 返回：
//   - *SpeakerSounder: 提示音播放器
//   - error: 音频设备初始化失败（调用方应降级为静音）
func NewSpeakerSounder(volume float64) (*SpeakerSounder, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &SpeakerSounder{volume: volume}, nil
}

// Play 播放提示音，已关闭时忽略
func (s *SpeakerSounder) Play(cue sound.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	streamer, err := sound.Streamer(cue, sampleRate, s.volume)
	if err != nil {
		log.Printf("[Term] Warning: %v", err)
		return
	}
	speaker.Play(streamer)
}

// Close 释放音频设备
func (s *SpeakerSounder) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}
