package style

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const (
	// Reset 清除所有颜色和样式
	Reset = "\x1b[0m"
	// ClearLine 清除光标到行尾的内容
	ClearLine = "\x1b[K"
	// CursorUp 光标上移一行
	CursorUp = "\x1b[1A"
)

// Color 前景色
type Color int

const (
	White Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGray
	DarkGray
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
)

var colorAttributes = map[Color]color.Attribute{
	White:        color.FgHiWhite,
	Black:        color.FgBlack,
	Red:          color.FgRed,
	Green:        color.FgGreen,
	Yellow:       color.FgYellow,
	Blue:         color.FgBlue,
	Magenta:      color.FgMagenta,
	Cyan:         color.FgCyan,
	LightGray:    color.FgWhite,
	DarkGray:     color.FgHiBlack,
	LightRed:     color.FgHiRed,
	LightGreen:   color.FgHiGreen,
	LightYellow:  color.FgHiYellow,
	LightBlue:    color.FgHiBlue,
	LightMagenta: color.FgHiMagenta,
	LightCyan:    color.FgHiCyan,
}

var colorNames = map[Color]string{
	White:        "white",
	Black:        "black",
	Red:          "red",
	Green:        "green",
	Yellow:       "yellow",
	Blue:         "blue",
	Magenta:      "magenta",
	Cyan:         "cyan",
	LightGray:    "lightgray",
	DarkGray:     "darkgray",
	LightRed:     "lightred",
	LightGreen:   "lightgreen",
	LightYellow:  "lightyellow",
	LightBlue:    "lightblue",
	LightMagenta: "lightmagenta",
	LightCyan:    "lightcyan",
}

// Attribute 返回对应的 SGR 参数
func (c Color) Attribute() color.Attribute {
	if attr, ok := colorAttributes[c]; ok {
		return attr
	}
	return color.FgBlack
}

// String 返回颜色的转义序列
func (c Color) String() string {
	return sgr(c.Attribute())
}

// Name 返回颜色名称
func (c Color) Name() string {
	return colorNames[c]
}

// ParseColor 按名称解析颜色，忽略大小写、空格、下划线和连字符
func ParseColor(name string) (Color, error) {
	key := canonical(name)
	for c, n := range colorNames {
		if n == key {
			return c, nil
		}
	}
	return Black, fmt.Errorf("未知颜色: %q", name)
}

// Style 文本样式
type Style int

const (
	Normal Style = iota
	Bold
	Dim
	Italic
	Underlined
	Blink
	Reverse
	Hidden
	StrikeThrough
)

var styleAttributes = map[Style]color.Attribute{
	Normal:        color.Reset,
	Bold:          color.Bold,
	Dim:           color.Faint,
	Italic:        color.Italic,
	Underlined:    color.Underline,
	Blink:         color.BlinkSlow,
	Reverse:       color.ReverseVideo,
	Hidden:        color.Concealed,
	StrikeThrough: color.CrossedOut,
}

var styleNames = map[Style]string{
	Normal:        "normal",
	Bold:          "bold",
	Dim:           "dim",
	Italic:        "italic",
	Underlined:    "underlined",
	Blink:         "blink",
	Reverse:       "reverse",
	Hidden:        "hidden",
	StrikeThrough: "strikethrough",
}

// Attribute 返回对应的 SGR 参数
func (s Style) Attribute() color.Attribute {
	if attr, ok := styleAttributes[s]; ok {
		return attr
	}
	return color.Reset
}

// String 返回样式的转义序列
func (s Style) String() string {
	return sgr(s.Attribute())
}

// Name 返回样式名称
func (s Style) Name() string {
	return styleNames[s]
}

// ParseStyle 按名称解析样式
func ParseStyle(name string) (Style, error) {
	key := canonical(name)
	for s, n := range styleNames {
		if n == key {
			return s, nil
		}
	}
	return Normal, fmt.Errorf("未知样式: %q", name)
}

func sgr(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", int(attr))
}

func canonical(name string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}
