package analysis

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// ValidateClaim 去除首尾空白并校验长度（按字符计），返回可直接提交的声明文本
func ValidateClaim(text string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", InvalidInputf("claim text is required and cannot be empty")
	}
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		return "", InvalidInputf("claim text exceeds maximum length of %d characters", maxLen)
	}
	return trimmed, nil
}

// Summarize 生成展示用的截断文本，结果总长度不超过 maxLen 个字符
func Summarize(text string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	keep := maxLen - len(ellipsis)
	if keep < 1 {
		keep = 1
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:keep]), " \t\r\n") + ellipsis
}
