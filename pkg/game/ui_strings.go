package game

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/gonewx/lightsout/pkg/embedded"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// 界面文本键
const (
	StrTitleLights  = "TITLE_LIGHTS"
	StrTitleOut     = "TITLE_OUT"
	StrWinYou       = "WIN_YOU"
	StrWinWin       = "WIN_WIN"
	StrStatusLit    = "STATUS_LIT"
	StrHintControls = "HINT_CONTROLS"
	StrHintNewGame  = "HINT_NEW_GAME"
	StrTermControls = "TERM_CONTROLS"
	StrTermNewGame  = "TERM_NEW_GAME"
	StrTapNewGame   = "TAP_NEW_GAME"
	StrSoundOn      = "SOUND_ON"
	StrSoundOff     = "SOUND_OFF"
	StrVolume       = "VOLUME"
	StrLanguage     = "LANGUAGE_NAME"
)

// stringsDir 文本文件目录，每种语言一个 <base>.txt
const stringsDir = "data/strings"

// supportedLocales 支持的界面语言，第一个为默认语言
var supportedLocales = []language.Tag{
	language.English,
	language.Chinese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// MatchLocale 为请求的语言选择最接近的已支持语言
//
// 参数：
//   - requested: 按优先级排列的语言标识，可以是 BCP 47 标签（"zh-CN"）
//     或 POSIX 环境变量格式（"zh_CN.UTF-8"），空值和无法解析的值被跳过
//
// 返回：
//   - language.Tag: 已支持的语言，全部无法匹配时为英语
func MatchLocale(requested ...string) language.Tag {
	var tags []language.Tag
	for _, r := range requested {
		if tag, ok := parseLocale(r); ok {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return supportedLocales[0]
	}

	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return supportedLocales[0]
	}
	return supportedLocales[index]
}

// NextLocale 按 supportedLocales 顺序循环切换到下一个语言
// 不在列表中的语言切换到默认语言
func NextLocale(current language.Tag) language.Tag {
	for i, tag := range supportedLocales {
		if tag == current {
			return supportedLocales[(i+1)%len(supportedLocales)]
		}
	}
	return supportedLocales[0]
}

// parseLocale 解析语言标识，兼容 LANG 环境变量的写法
func parseLocale(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// UIStrings 界面文本管理器
// 从 data/strings/<locale>.txt 加载文本，缺失的键回退到英文
type UIStrings struct {
	tag     language.Tag
	strings map[string]string
	printer *message.Printer
}

// NewUIStrings 加载指定语言的界面文本
//
// 参数：
//   - locale: 已支持的语言（通常来自 MatchLocale）
//
// 返回：
//   - error: 文本文件读取或解析失败
//
// 文件格式：
//
//	[KEY]
//	文本内容
func NewUIStrings(locale language.Tag) (*UIStrings, error) {
	base := localeFile(supportedLocales[0])
	texts, err := loadStringsFile(base)
	if err != nil {
		return nil, err
	}

	if file := localeFile(locale); file != base && !embedded.Exists(file) {
		log.Printf("[UIStrings] Warning: no strings for locale %s, using %s", locale, supportedLocales[0])
	} else if file != base {
		overlay, err := loadStringsFile(file)
		if err != nil {
			return nil, err
		}
		for key, text := range overlay {
			texts[key] = text
		}
	}

	// 按键排序注册，保证同一文本集构建出的目录一致
	keys := make([]string, 0, len(texts))
	for key := range texts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	builder := catalog.NewBuilder(catalog.Fallback(supportedLocales[0]))
	for _, key := range keys {
		if err := builder.SetString(locale, key, texts[key]); err != nil {
			return nil, fmt.Errorf("failed to register string %s: %w", key, err)
		}
	}

	log.Printf("[UIStrings] Loaded %d strings for locale %s", len(texts), locale)
	return &UIStrings{
		tag:     locale,
		strings: texts,
		printer: message.NewPrinter(locale, message.Catalog(builder)),
	}, nil
}

// Get 根据键获取文本
// 键不存在时返回 "[KEY]"（用于调试）
func (u *UIStrings) Get(key string) string {
	if text, ok := u.strings[key]; ok {
		return text
	}
	return "[" + key + "]"
}

// Sprintf 按当前语言格式化文本（例如 STATUS_LIT 的 %d）
func (u *UIStrings) Sprintf(key string, args ...any) string {
	if _, ok := u.strings[key]; !ok {
		return "[" + key + "]"
	}
	return u.printer.Sprintf(key, args...)
}

// CycleLocale 加载下一个语言的文本，并记录到偏好（settings 可为 nil）
// 加载失败时保持当前语言
func CycleLocale(current *UIStrings, settings *SettingsManager) (*UIStrings, error) {
	next := NextLocale(current.Locale())
	ui, err := NewUIStrings(next)
	if err != nil {
		return current, err
	}
	if settings != nil {
		settings.SetLocale(next.String())
	}
	log.Printf("[UIStrings] Switched locale %s -> %s", current.Locale(), next)
	return ui, nil
}

// Locale 返回当前语言
func (u *UIStrings) Locale() language.Tag {
	return u.tag
}

// localeFile 语言对应的文本文件路径
func localeFile(tag language.Tag) string {
	base, _ := tag.Base()
	return stringsDir + "/" + base.String() + ".txt"
}

// loadStringsFile 从 embedded FS 读取文本文件
func loadStringsFile(filePath string) (map[string]string, error) {
	file, err := embedded.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open strings file %s: %w", filePath, err)
	}
	defer file.Close()

	texts, err := parseStrings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read strings file %s: %w", filePath, err)
	}
	return texts, nil
}

// parseStrings 解析 "[KEY]" 行 + 文本行 的格式
func parseStrings(r io.Reader) (map[string]string, error) {
	texts := make(map[string]string)

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		if currentKey != "" {
			texts[currentKey] = line
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}
