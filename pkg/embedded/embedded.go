// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在 data 包（data/embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 以 "data/" 开头的路径从嵌入文件系统读取，其他路径（例如用户通过 -config
// 指定的配置文件）直接从磁盘读取。使用嵌入资源前必须调用 Init()。
package embedded

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// errNotInitialized 未调用 Init 就访问嵌入资源
var errNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 初始化嵌入文件系统
// 必须在 main() 开始时、任何资源加载之前调用
// data 以 data/ 目录为根（例如 data.FS），访问时去掉路径中的 "data/" 前缀
// 传入 nil 恢复为未初始化状态
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// IsEmbeddedPath 判断路径是否指向嵌入资源
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), "data/")
}

// normalize 标准化路径分隔符为正斜杠并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// fsPath 将 "data/xxx" 转换为嵌入文件系统内的路径 "xxx"
func fsPath(path string) string {
	return strings.TrimPrefix(normalize(path), "data/")
}

// Open 打开文件
// "data/" 开头的路径从嵌入文件系统打开，其他路径从磁盘打开
func Open(path string) (fs.File, error) {
	if !IsEmbeddedPath(path) {
		return os.Open(path)
	}
	if !initialized {
		return nil, errNotInitialized
	}
	return dataFS.Open(fsPath(path))
}

// ReadFile 读取文件内容
// "data/" 开头的路径从嵌入文件系统读取，其他路径从磁盘读取
func ReadFile(path string) ([]byte, error) {
	if !IsEmbeddedPath(path) {
		return os.ReadFile(path)
	}
	if !initialized {
		return nil, errNotInitialized
	}
	return fs.ReadFile(dataFS, fsPath(path))
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
