package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "LIGHTSOUT_"

// envOverrides 可通过环境变量覆盖的配置项
// 使用指针区分"未设置"和"设置为零值"
type envOverrides struct {
	Rows            *int     `env:"ROWS"`
	Cols            *int     `env:"COLS"`
	ChanceStartsOff *float64 `env:"CHANCE_OFF"`
	Seed            *uint64  `env:"SEED"`
	Locale          *string  `env:"LOCALE"`
}

// ApplyEnv 用 LIGHTSOUT_* 环境变量覆盖配置
//
// 支持的变量：LIGHTSOUT_ROWS, LIGHTSOUT_COLS, LIGHTSOUT_CHANCE_OFF,
// LIGHTSOUT_SEED, LIGHTSOUT_LOCALE。未设置的变量不影响原有值。
//
// 参数：
//   - cfg: 要覆盖的配置（原地修改）
//   - environ: 环境变量表，为 nil 时读取进程环境变量
//
// 返回：
//   - error: 解析失败或覆盖后的配置不合法
func ApplyEnv(cfg *GameConfig, environ map[string]string) error {
	var o envOverrides
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Rows != nil {
		cfg.Board.Rows = *o.Rows
	}
	if o.Cols != nil {
		cfg.Board.Cols = *o.Cols
	}
	if o.ChanceStartsOff != nil {
		cfg.Board.ChanceStartsOff = *o.ChanceStartsOff
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Locale != nil {
		cfg.Locale = *o.Locale
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	return nil
}
