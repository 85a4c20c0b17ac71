// Package data 声明嵌入的配置和文本资源
//
// //go:embed 指令只能嵌入当前包目录及其子目录的文件，
// 所以资源声明放在 data/ 目录内，由 GUI 和终端两个入口共同使用。
package data

import "embed"

// FS 以 data/ 为根目录的嵌入文件系统（包含 config/ 和 strings/）
//
//go:embed config strings
var FS embed.FS
