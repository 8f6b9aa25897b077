package langtools

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// 长度不超过该值的文本不做外语判定
	maxShortTextLength = 5
	foreignRatio       = 0.8
	nativeRatio        = 0.6
)

var urlPattern = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)

// 平假名、片假名
func isKana(r rune) bool { return r >= '\u3040' && r <= '\u30ff' }

// CJK 统一表意文字（基本区）
func isCJK(r rune) bool { return r >= '\u4e00' && r <= '\u9fa5' }

// 数值类型为 Digit 但不属于 Nd 类别的字符（上下标、带圈数字等）
var otherDigits = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19da, Hi: 0x19da, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x24f5, Hi: 0x24fd, Stride: 1},
		{Lo: 0x24ff, Hi: 0x24ff, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10a40, Hi: 0x10a43, Stride: 1},
		{Lo: 0x10e60, Hi: 0x10e68, Stride: 1},
		{Lo: 0x11052, Hi: 0x1105a, Stride: 1},
		{Lo: 0x1f100, Hi: 0x1f10a, Stride: 1},
	},
	LatinOffset: 2,
}

// isDigit 十进制数字以及上标、带圈数字等数字字符
func isDigit(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(otherDigits, r)
}

// IsForeign 判断文本是否需要翻译成中文
//
// 规则:
//   - 长度 ≤ 5 返回 false
//   - 含假名直接返回 true
//   - 否则统计非数字字符中非 CJK 字符的占比，≥ 0.8 返回 true
func IsForeign(text string) bool {
	runes := []rune(text)
	if len(runes) <= maxShortTextLength {
		return false
	}

	for _, r := range runes {
		if isKana(r) {
			return true
		}
	}

	var countable, nonCJK int
	for _, r := range runes {
		if isDigit(r) {
			continue
		}
		countable++
		if !isCJK(r) {
			nonCJK++
		}
	}
	if countable == 0 {
		return false
	}

	return float64(nonCJK)/float64(countable) >= foreignRatio
}

// IsMostlyNative 判断文本是否以中文为主（CJK 字符占全部字符 ≥ 0.6）
func IsMostlyNative(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 {
		return false
	}

	var cjk int
	for _, r := range runes {
		if isCJK(r) {
			cjk++
		}
	}

	return float64(cjk)/float64(len(runes)) >= nativeRatio
}

// ContainsURL 文本中是否含有链接
func ContainsURL(text string) bool {
	return urlPattern.MatchString(text)
}

// IsCommand 文本是否为指令（以 / 或 ! 开头）
func IsCommand(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "/") || strings.HasPrefix(text, "!")
}
