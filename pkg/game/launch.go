package game

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/lightsout/pkg/board"
	"github.com/gonewx/lightsout/pkg/config"
	"github.com/gonewx/lightsout/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/text/language"
)

// AppName gdata 存储使用的应用名
const AppName = "lightsout"

// Overrides 命令行参数覆盖项，nil 表示未指定
type Overrides struct {
	Rows            *int
	Cols            *int
	ChanceStartsOff *float64
	Seed            *uint64
	Locale          *string
}

// OverrideFlags 注册棋盘相关的命令行参数
//
// 返回的函数在 fs.Parse 之后调用，只收集实际出现在命令行上的参数。
func OverrideFlags(fs *flag.FlagSet) func() Overrides {
	rows := fs.Int("rows", 0, "棋盘行数")
	cols := fs.Int("cols", 0, "棋盘列数")
	chance := fs.Float64("chance-off", 0, "每个格子初始熄灭的概率 [0,1]")
	seed := fs.Uint64("seed", 0, "随机种子，0 表示不固定")
	locale := fs.String("locale", "", "界面语言（en, zh）")

	return func() Overrides {
		var o Overrides
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "rows":
				o.Rows = rows
			case "cols":
				o.Cols = cols
			case "chance-off":
				o.ChanceStartsOff = chance
			case "seed":
				o.Seed = seed
			case "locale":
				o.Locale = locale
			}
		})
		return o
	}
}

// OpenSettings 打开偏好存储
// gdata 不可用时返回降级模式的 SettingsManager（仅内存）
func OpenSettings(appName string) *SettingsManager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (preferences will not be saved)", err)
		gdataManager = nil
	}

	sm, _ := NewSettingsManager(gdataManager)
	return sm
}

// ResolveGameConfig 按优先级合并配置
//
// 优先级从低到高：配置文件 → 已保存的偏好 → LIGHTSOUT_* 环境变量 → 命令行参数
//
// 参数：
//   - path: 配置文件路径，为空时使用嵌入的默认配置
//   - sm: 偏好设置（可为 nil）
//   - environ: 环境变量表，为 nil 时读取进程环境变量
//   - o: 命令行参数覆盖项
func ResolveGameConfig(path string, sm *SettingsManager, environ map[string]string, o Overrides) (*config.GameConfig, error) {
	if path == "" {
		path = config.DefaultGameConfigPath
	}
	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		return nil, err
	}

	if sm != nil {
		sm.ApplyBoardPreferences(&cfg.Board)
		if locale := sm.GetSettings().Locale; locale != "" {
			cfg.Locale = locale
		}
		// 手工修改的偏好可能与配置冲突，不合法时忽略偏好
		if err := cfg.Validate(); err != nil {
			log.Printf("[Config] Warning: saved preferences ignored: %v", err)
			if cfg, err = config.LoadGameConfig(path); err != nil {
				return nil, err
			}
		}
	}

	if err := config.ApplyEnv(cfg, environ); err != nil {
		return nil, err
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
		return nil, fmt.Errorf("command line: %w", err)
	}

	log.Printf("[Config] Board %dx%d, chanceStartsOff=%.2f, seed=%d, locale=%q",
		cfg.Board.Rows, cfg.Board.Cols, cfg.Board.ChanceStartsOff, cfg.Seed, cfg.Locale)
	return cfg, nil
}

// NewRandomSource 根据种子创建随机源，0 表示使用进程级随机源
func NewRandomSource(seed uint64) board.RandomSource {
	if seed == 0 {
		return nil
	}
	return board.NewSeededSource(seed)
}

// ResolveLocale 选择界面语言：配置中的语言优先，其次是系统语言环境变量
func ResolveLocale(configured string) language.Tag {
	return MatchLocale(configured, os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}
