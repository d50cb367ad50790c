package utils

import (
	"fmt"
	"strings"
)

// FormatCount 把粉丝数格式化成 1.2M / 800k 这样的短形式
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dk", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FileExt 返回文件名的小写扩展名（不含点），没有扩展名返回空串
func FileExt(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
