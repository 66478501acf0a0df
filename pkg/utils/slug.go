package utils

import "strings"

// Slugify 把商品名转成 URL 安全的 slug：小写、去引号、
// 非字母数字压成单个连字符、去掉首尾连字符。
// 同一个名字永远得到同一个 slug，对结果再跑一遍也不变。
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		switch {
		case r == '\'' || r == '"':
			// 引号直接丢弃，不当作分隔符
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
