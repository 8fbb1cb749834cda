package pblog

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ccp-p/termprogress/pkg/progress"
	"github.com/ccp-p/termprogress/pkg/style"
)

// ErrAlreadyInstalled 日志桥接已经安装过
var ErrAlreadyInstalled = errors.New("progress bar logger already installed")

// 安装和移除 Bridge 时持有，检查和添加 hook 需要是一步操作
var installMu sync.Mutex

// 输出日志前清除进度条所在行
const clearLine = "\r" + style.ClearLine + "\r"

// Disposition 内部日志的使用方式
type Disposition int

const (
	// Main 始终使用内部日志；有进度条时先清行，输出后重绘进度条
	Main Disposition = iota
	// Fallback 仅在没有进度条时使用内部日志，否则通过进度条信息行输出
	Fallback
	// None 没有内部日志；没有进度条时丢弃日志
	None
)

// Inner 内部日志及其使用方式
type Inner struct {
	Kind Disposition
	Sink Sink
}

// MainInner 始终使用 sink
func MainInner(sink Sink) Inner { return Inner{Kind: Main, Sink: sink} }

// FallbackInner 仅在没有进度条时使用 sink
func FallbackInner(sink Sink) Inner { return Inner{Kind: Fallback, Sink: sink} }

// NoInner 不使用内部日志
func NoInner() Inner { return Inner{Kind: None} }

// Bridge 把 logrus 日志路由到活动进度条
//
// Bridge 实现 logrus.Hook，通过 Install 安装到 logger 上，
// 安装后 logger 自身的输出被丢弃，全部由 Bridge 负责。
type Bridge struct {
	registry *progress.Registry
	inner    Inner
	level    logrus.Level
	filter   func(entry *logrus.Entry) bool
	stdout   io.Writer
	stderr   io.Writer

	installed atomic.Bool
}

// Option 日志桥接选项
type Option func(*Bridge)

// WithInner 设置内部日志
func WithInner(inner Inner) Option {
	return func(b *Bridge) {
		b.inner = inner
	}
}

// WithLevel 设置最高日志级别
func WithLevel(level logrus.Level) Option {
	return func(b *Bridge) {
		b.level = level
	}
}

// WithFilter 设置过滤函数，返回 false 的日志被跳过
func WithFilter(filter func(entry *logrus.Entry) bool) Option {
	return func(b *Bridge) {
		b.filter = filter
	}
}

// WithRegistry 设置进度条注册表（默认 progress.Default()）
func WithRegistry(r *progress.Registry) Option {
	return func(b *Bridge) {
		b.registry = r
	}
}

// WithStreams 设置 Main 模式下清行用的标准输出和标准错误
func WithStreams(stdout, stderr io.Writer) Option {
	return func(b *Bridge) {
		b.stdout = stdout
		b.stderr = stderr
	}
}

// New 创建日志桥接。默认使用 Fallback，内部日志按行输出到标准输出。
func New(opts ...Option) *Bridge {
	b := &Bridge{
		inner:  FallbackInner(NewLineSink(color.Output)),
		level:  logrus.TraceLevel,
		filter: func(*logrus.Entry) bool { return true },
		stdout: color.Output,
		stderr: color.Error,
	}
	for _, o := range opts {
		o(b)
	}
	if b.registry == nil {
		b.registry = progress.Default()
	}
	return b
}

// Levels 实现 logrus.Hook
func (b *Bridge) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, level := range logrus.AllLevels {
		if level <= b.level {
			levels = append(levels, level)
		}
	}
	return levels
}

// Fire 实现 logrus.Hook
func (b *Bridge) Fire(entry *logrus.Entry) error {
	b.Log(entry)
	return nil
}

// Enabled 判断该级别是否可能输出。Main 模式下日志总是交给内部日志，
// 因此还要看内部日志的级别；其余模式下有进度条时不受内部日志级别限制。
func (b *Bridge) Enabled(level logrus.Level) bool {
	if level > b.level {
		return false
	}
	if b.inner.Kind == Main {
		return b.innerEnabled(level)
	}
	return true
}

// Log 按内部日志的使用方式分发一条日志
func (b *Bridge) Log(entry *logrus.Entry) {
	if entry.Level > b.level || !b.filter(entry) {
		return
	}

	switch b.inner.Kind {
	case Main:
		if !b.innerEnabled(entry.Level) {
			return
		}
		active := b.registry.Do(func(pb *progress.ProgressBar) {
			_, _ = io.WriteString(b.stdout, clearLine)
			_, _ = io.WriteString(b.stderr, clearLine)
			b.logInner(entry)
			pb.Display()
		})
		if !active {
			b.logInner(entry)
		}
	case Fallback:
		if !b.printInfo(entry) {
			b.logInner(entry)
		}
	case None:
		b.printInfo(entry)
	}
}

// Flush 刷新内部日志
func (b *Bridge) Flush() {
	if b.inner.Sink != nil {
		b.inner.Sink.Flush()
	}
}

// logInner 交给内部日志，级别由内部日志自己判断
func (b *Bridge) logInner(entry *logrus.Entry) {
	if b.innerEnabled(entry.Level) {
		b.inner.Sink.Log(entry)
	}
}

func (b *Bridge) innerEnabled(level logrus.Level) bool {
	return b.inner.Sink != nil && b.inner.Sink.Enabled(level)
}

// printInfo 通过活动进度条输出信息行，没有进度条时返回 false
func (b *Bridge) printInfo(entry *logrus.Entry) bool {
	tag, c, s := levelInfo(entry.Level)
	text := message(entry)
	return b.registry.Do(func(pb *progress.ProgressBar) {
		pb.PrintInfo(tag, text, c, s)
	})
}

func levelInfo(level logrus.Level) (string, style.Color, style.Style) {
	switch level {
	case logrus.PanicLevel:
		return "Panic", style.Red, style.Bold
	case logrus.FatalLevel:
		return "Fatal", style.Red, style.Bold
	case logrus.ErrorLevel:
		return "Error", style.Red, style.Bold
	case logrus.WarnLevel:
		return "Warn", style.Yellow, style.Bold
	case logrus.InfoLevel:
		return "Info", style.LightGreen, style.Bold
	case logrus.DebugLevel:
		return "Debug", style.Blue, style.Normal
	default:
		return "Trace", style.LightGray, style.Normal
	}
}

// message 返回日志消息，字段按键名排序追加在后面
func message(entry *logrus.Entry) string {
	if len(entry.Data) == 0 {
		return entry.Message
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(entry.Message)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
	}
	return sb.String()
}

// Install 把日志桥接安装到 logger。每个 Bridge 只能安装一次，
// 同一个 logger 上也只能有一个 Bridge。
func (b *Bridge) Install(logger *logrus.Logger) error {
	installMu.Lock()
	defer installMu.Unlock()

	if HasBridge(logger) {
		return ErrAlreadyInstalled
	}
	if !b.installed.CompareAndSwap(false, true) {
		return ErrAlreadyInstalled
	}

	logger.AddHook(b)
	logger.SetOutput(io.Discard)
	logger.SetLevel(b.level)
	return nil
}

// HasBridge 判断 logger 上是否已经安装了 Bridge
func HasBridge(logger *logrus.Logger) bool {
	for _, hooks := range logger.Hooks {
		for _, h := range hooks {
			if _, ok := h.(*Bridge); ok {
				return true
			}
		}
	}
	return false
}

// Detach 从 logger 上移除所有 Bridge，其他 hook 保留。logger 的输出需要调用方恢复。
func Detach(logger *logrus.Logger) {
	installMu.Lock()
	defer installMu.Unlock()

	kept := make(logrus.LevelHooks)
	for level, hooks := range logger.Hooks {
		for _, h := range hooks {
			if _, ok := h.(*Bridge); !ok {
				kept[level] = append(kept[level], h)
			}
		}
	}
	logger.ReplaceHooks(kept)
}
