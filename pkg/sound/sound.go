// Package sound 合成游戏提示音
//
// 提示音全部由正弦波实时合成，不依赖音频文件。
// 终端前端直接把 Streamer 交给 beep/speaker 播放，
// 图形前端通过 PCM16 转成 ebiten audio 需要的字节流。
package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue 提示音类型
type Cue int

const (
	// CueToggle 切换一盏灯时的短促点击声
	CueToggle Cue = iota
	// CueWin 全部熄灭时的上行和弦
	CueWin
	// CueNewGame 开始新一局
	CueNewGame
)

// String 返回提示音名称（用于日志）
func (c Cue) String() string {
	switch c {
	case CueToggle:
		return "toggle"
	case CueWin:
		return "win"
	case CueNewGame:
		return "new-game"
	default:
		return fmt.Sprintf("Cue(%d)", int(c))
	}
}

// Note 一个音符
type Note struct {
	Freq     float64
	Duration time.Duration
}

// 淡入淡出时长，避免波形截断产生爆音
const (
	attack  = 4 * time.Millisecond
	release = 12 * time.Millisecond
)

// cueNotes 各提示音的音符序列
var cueNotes = map[Cue][]Note{
	CueToggle: {
		{Freq: 1318.51, Duration: 35 * time.Millisecond}, // E6
	},
	CueWin: {
		{Freq: 523.25, Duration: 110 * time.Millisecond},  // C5
		{Freq: 659.25, Duration: 110 * time.Millisecond},  // E5
		{Freq: 783.99, Duration: 110 * time.Millisecond},  // G5
		{Freq: 1046.50, Duration: 280 * time.Millisecond}, // C6
	},
	CueNewGame: {
		{Freq: 783.99, Duration: 60 * time.Millisecond}, // G5
		{Freq: 523.25, Duration: 90 * time.Millisecond}, // C5
	},
}

// Notes 返回提示音的音符序列（副本）
func Notes(cue Cue) []Note {
	return append([]Note(nil), cueNotes[cue]...)
}

// Length 返回提示音在指定采样率下的采样点数
func Length(cue Cue, rate beep.SampleRate) int {
	n := 0
	for _, note := range cueNotes[cue] {
		n += rate.N(note.Duration)
	}
	return n
}

// Streamer 生成提示音
//
// 参数：
//   - cue: 提示音类型
//   - rate: 采样率
//   - volume: 音量 0.0 ~ 1.0，0 表示静音
//
// 返回：
//   - beep.Streamer: 有限长度的音频流
//   - error: 未知提示音或频率超出采样率允许范围
func Streamer(cue Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown sound cue %v", cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, note := range notes {
		tone, err := generators.SineTone(rate, note.Freq)
		if err != nil {
			return nil, fmt.Errorf("failed to create %v tone %.2fHz: %w", cue, note.Freq, err)
		}
		n := rate.N(note.Duration)
		parts = append(parts, newEnvelope(beep.Take(n, tone), n, rate.N(attack), rate.N(release)))
	}

	return newVolume(beep.Seq(parts...), volume), nil
}

// PCM16 把音频流渲染为 16 位小端立体声 PCM
// ebiten audio.Context.NewPlayerFromBytes 直接接受该格式
func PCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			return out
		}
	}
}

// toInt16 将 [-1, 1] 的采样值量化为 int16，超出范围的值被截断
func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// envelope 对音符做线性淡入淡出
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume 线性音量转为 beep 的对数音量，0 视为静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1)), Silent: false}
}
