package style

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LabelWidth 动作标签和信息标签的固定宽度（字符数）
const LabelWidth = 12

// Mode 标签不足宽度时的对齐方式
type Mode int

const (
	// Right 右对齐，左侧补空格（默认）
	Right Mode = iota
	// Left 左对齐，右侧补空格
	Left
	// Center 居中，多出的空格补在左侧
	Center
)

var modeNames = map[Mode]string{
	Right:  "right",
	Left:   "left",
	Center: "center",
}

// Name 返回对齐方式名称
func (m Mode) Name() string {
	return modeNames[m]
}

// ParseMode 按名称解析对齐方式
func ParseMode(name string) (Mode, error) {
	key := canonical(name)
	for m, n := range modeNames {
		if n == key {
			return m, nil
		}
	}
	return Right, fmt.Errorf("未知对齐方式: %q", name)
}

// Normalize 把标签规整为 12 个字符：刚好 12 个原样返回，超出截断，不足左侧补空格
func Normalize(text string) string {
	return NormalizeMode(text, Right)
}

// NormalizeMode 按指定对齐方式规整标签
func NormalizeMode(text string, mode Mode) string {
	n := utf8.RuneCountInString(text)
	if n == LabelWidth {
		return text
	}
	if n > LabelWidth {
		runes := []rune(text)
		return string(runes[:LabelWidth])
	}

	pad := LabelWidth - n
	switch mode {
	case Left:
		return text + strings.Repeat(" ", pad)
	case Center:
		right := pad / 2
		return strings.Repeat(" ", pad-right) + text + strings.Repeat(" ", right)
	default:
		return strings.Repeat(" ", pad) + text
	}
}
