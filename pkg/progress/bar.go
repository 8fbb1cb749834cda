package progress

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ccp-p/termprogress/pkg/style"
)

// DefaultWidth 进度条轨道的默认宽度
const DefaultWidth = 50

// ProgressBar 单行原地刷新的进度条
//
// 进度不会被限制在 max 以内：超出或回退时只是显示异常，不会 panic。
// ProgressBar 本身不加锁，并发使用请通过 Registry。
type ProgressBar struct {
	max         uint64
	progress    uint64
	width       int
	action      string
	actionColor style.Color
	actionStyle style.Style
	timer       *time.Time // 仅在启用 ETA 时存在

	out io.Writer
	now func() time.Time
}

// Option 进度条构造选项
type Option func(*ProgressBar)

// WithWriter 设置输出目标（默认 color.Output，即标准输出）
func WithWriter(w io.Writer) Option {
	return func(pb *ProgressBar) {
		pb.out = w
	}
}

// WithClock 设置时钟，用于计算 ETA
func WithClock(now func() time.Time) Option {
	return func(pb *ProgressBar) {
		pb.now = now
	}
}

// WithWidth 设置初始宽度，构造时不会渲染
func WithWidth(w int) Option {
	return func(pb *ProgressBar) {
		pb.width = w
	}
}

// New 创建进度条，总数为 max
//
// 每完成一个动作调用一次 Inc。进度条运行期间不要直接打印到标准输出，
// 请使用 PrintInfo。
func New(max uint64, opts ...Option) *ProgressBar {
	pb := &ProgressBar{
		max:         max,
		width:       DefaultWidth,
		actionColor: style.Black,
		actionStyle: style.Normal,
		out:         color.Output,
		now:         time.Now,
	}
	for _, o := range opts {
		o(pb)
	}
	return pb
}

// NewWithETA 创建带 ETA 的进度条，计时器从现在开始
func NewWithETA(max uint64, opts ...Option) *ProgressBar {
	pb := New(max, opts...)
	pb.startTimer()
	return pb
}

func (pb *ProgressBar) startTimer() {
	start := pb.now()
	pb.timer = &start
}

// Progress 当前进度
func (pb *ProgressBar) Progress() uint64 { return pb.progress }

// Max 总数
func (pb *ProgressBar) Max() uint64 { return pb.max }

// Width 轨道宽度
func (pb *ProgressBar) Width() int { return pb.width }

// Action 规整后的动作标签
func (pb *ProgressBar) Action() string { return pb.action }

// ETAEnabled 是否启用了 ETA
func (pb *ProgressBar) ETAEnabled() bool { return pb.timer != nil }

// SetWidth 设置轨道宽度（字符数，默认 50）
func (pb *ProgressBar) SetWidth(w int) {
	pb.width = w
	pb.Display()
}

// SetProgress 设置进度。启用 ETA 时计时器重置为现在，
// 因此 ETA 反映的是上一次跳变之后的速度，而不是整体平均速度。
func (pb *ProgressBar) SetProgress(p uint64) {
	pb.progress = p
	if pb.timer != nil {
		pb.startTimer()
	}
	pb.Display()
}

// SetMax 设置总数
func (pb *ProgressBar) SetMax(m uint64) {
	pb.max = m
	pb.Display()
}

// Inc 进度加一，不影响计时器
func (pb *ProgressBar) Inc() {
	pb.progress++
	pb.Display()
}

// EnableETA 启用 ETA。注意：进度会被清零，应在开始前调用而不是中途调用。
func (pb *ProgressBar) EnableETA() {
	pb.progress = 0
	pb.startTimer()
}

// DisableETA 关闭 ETA
func (pb *ProgressBar) DisableETA() {
	pb.timer = nil
}

// SetAction 设置显示在进度条前面的动作标签
func (pb *ProgressBar) SetAction(action string, c style.Color, s style.Style) {
	pb.SetActionWithMode(action, c, s, style.Right)
}

// SetActionWithMode 设置动作标签，并指定不足 12 个字符时的对齐方式
func (pb *ProgressBar) SetActionWithMode(action string, c style.Color, s style.Style, mode style.Mode) {
	pb.action = style.NormalizeMode(action, mode)
	pb.actionColor = c
	pb.actionStyle = s
	pb.Display()
}

// PrintInfo 在进度条上方输出一行信息，然后重新绘制进度条
func (pb *ProgressBar) PrintInfo(tag, text string, c style.Color, s style.Style) {
	pb.writeInfo(tag, text, c, s)
	pb.Display()
}

// PrintFinalInfo 输出最后一行信息，进度清零且不再绘制进度条
func (pb *ProgressBar) PrintFinalInfo(tag, text string, c style.Color, s style.Style) {
	pb.writeInfo(tag, text, c, s)
	pb.progress = 0
}

func (pb *ProgressBar) writeInfo(tag, text string, c style.Color, s style.Style) {
	line := s.String() + c.String() + style.Normalize(tag) + style.Reset + " " + text + style.ClearLine + "\n"
	pb.write(line)
}

// Display 绘制进度条。输出后换行再上移一行，下一次绘制会覆盖同一行。
func (pb *ProgressBar) Display() {
	pb.write(pb.String() + "\n" + style.CursorUp)
}

// String 返回进度条当前的一行内容（不含光标控制）
func (pb *ProgressBar) String() string {
	var b strings.Builder
	b.WriteString(pb.actionStyle.String())
	b.WriteString(pb.actionColor.String())
	b.WriteString(pb.action)
	b.WriteString(style.Reset)
	b.WriteString(style.ClearLine)
	b.WriteString(" [")
	b.WriteString(pb.track())
	fmt.Fprintf(&b, "] %d/%d", pb.progress, pb.max)
	if remaining, ok := pb.estimate(); ok {
		fmt.Fprintf(&b, " (ETA %s)", FormatETA(remaining))
	}
	return b.String()
}

// track 绘制轨道：已完成的格子为 '='，正在填充的格子为 '>'，其余为空格
func (pb *ProgressBar) track() string {
	if pb.width <= 0 {
		return ""
	}

	w := uint64(pb.width)
	cells := make([]byte, pb.width)
	for i := uint64(0); i < w; i++ {
		lo := mulDiv(i, pb.max, w)
		hi := mulDiv(i+1, pb.max, w)
		switch {
		case lo >= pb.progress:
			cells[i] = ' '
		case hi >= pb.progress:
			cells[i] = '>'
		default:
			cells[i] = '='
		}
	}
	return string(cells)
}

// mulDiv 计算 a*b/c，中间结果按 128 位计算，a <= c 时不会溢出
func mulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, c)
	return q
}

// Finalize 结束进度条：进度清零并换行，之后的输出不会覆盖进度条
func (pb *ProgressBar) Finalize() {
	pb.progress = 0
	pb.write("\n")
}

// 终端写入失败时忽略
func (pb *ProgressBar) write(s string) {
	if pb.out == nil {
		return
	}
	_, _ = io.WriteString(pb.out, s)
}
