//go:build !android

package utils

// EnsureStorageDir 确保偏好存储目录存在（非 Android 平台的空实现）
// gdata 在其他平台上会自动创建存储目录
func EnsureStorageDir() error {
	return nil
}
