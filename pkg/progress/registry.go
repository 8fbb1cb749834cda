package progress

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ccp-p/termprogress/pkg/style"
)

// Registry 持有至多一个活动进度条，所有访问都经过同一把锁
//
// 锁只在一次代理调用期间持有，因此一行输出不会被打断，
// 但不同 goroutine 的调用之间可以以整行为单位交错。
type Registry struct {
	mu      sync.Mutex
	bar     *ProgressBar
	log     *logrus.Logger
	barOpts []Option
}

// RegistryOption 注册表构造选项
type RegistryOption func(*Registry)

// WithDiagnostics 设置诊断日志（默认输出到标准错误）
func WithDiagnostics(logger *logrus.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = logger
	}
}

// WithBarOptions 设置 Init / InitWithETA 创建进度条时使用的选项
func WithBarOptions(opts ...Option) RegistryOption {
	return func(r *Registry) {
		r.barOpts = append(r.barOpts, opts...)
	}
}

// NewRegistry 创建空的注册表
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = newDiagnostics()
	}
	return r
}

func newDiagnostics() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(color.Error)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// HasActive 是否存在活动进度条
func (r *Registry) HasActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bar != nil
}

// SetActive 替换当前进度条
func (r *Registry) SetActive(pb *ProgressBar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bar = pb
}

// Init 创建新的进度条并设为活动
func (r *Registry) Init(max uint64) {
	r.SetActive(New(max, r.barOpts...))
}

// InitWithETA 创建带 ETA 的进度条并设为活动
func (r *Registry) InitWithETA(max uint64) {
	r.SetActive(NewWithETA(max, r.barOpts...))
}

// Progress 返回活动进度条的当前进度
func (r *Registry) Progress() (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return 0, false
	}
	return r.bar.progress, true
}

// SetProgress 设置进度
func (r *Registry) SetProgress(p uint64) error {
	return r.with("set progress bar progression", func(pb *ProgressBar) {
		pb.SetProgress(p)
	})
}

// Inc 进度加一
func (r *Registry) Inc() error {
	return r.with("increase progress bar progression", func(pb *ProgressBar) {
		pb.Inc()
	})
}

// SetWidth 设置宽度
func (r *Registry) SetWidth(w int) error {
	return r.with("set progress bar width", func(pb *ProgressBar) {
		pb.SetWidth(w)
	})
}

// SetMax 设置总数
func (r *Registry) SetMax(m uint64) error {
	return r.with("set progress bar max", func(pb *ProgressBar) {
		pb.SetMax(m)
	})
}

// EnableETA 启用 ETA（进度清零）
func (r *Registry) EnableETA() error {
	return r.with("enable progress bar eta", func(pb *ProgressBar) {
		pb.EnableETA()
	})
}

// DisableETA 关闭 ETA
func (r *Registry) DisableETA() error {
	return r.with("disable progress bar eta", func(pb *ProgressBar) {
		pb.DisableETA()
	})
}

// SetAction 设置动作标签
func (r *Registry) SetAction(action string, c style.Color, s style.Style) error {
	return r.with("set progress bar action", func(pb *ProgressBar) {
		pb.SetAction(action, c, s)
	})
}

// SetActionWithMode 设置动作标签和对齐方式
func (r *Registry) SetActionWithMode(action string, c style.Color, s style.Style, mode style.Mode) error {
	return r.with("set progress bar action", func(pb *ProgressBar) {
		pb.SetActionWithMode(action, c, s, mode)
	})
}

// PrintInfo 输出一行信息
func (r *Registry) PrintInfo(tag, text string, c style.Color, s style.Style) error {
	return r.with("print progress bar info", func(pb *ProgressBar) {
		pb.PrintInfo(tag, text, c, s)
	})
}

// PrintFinalInfo 输出最后一行信息
func (r *Registry) PrintFinalInfo(tag, text string, c style.Color, s style.Style) error {
	return r.with("print progress bar final info", func(pb *ProgressBar) {
		pb.PrintFinalInfo(tag, text, c, s)
	})
}

// Finalize 结束并移除活动进度条
func (r *Registry) Finalize() error {
	return r.with("finalize progress bar", func(pb *ProgressBar) {
		r.bar = nil
		pb.Finalize()
	})
}

// Do 在锁内对活动进度条执行 fn，没有进度条时返回 false 且不报告错误
func (r *Registry) Do(fn func(pb *ProgressBar)) bool {
	ok, err := r.locked("access progress bar", fn)
	if err != nil {
		r.log.Error(err.Error())
	}
	return ok
}

// with 执行一次代理调用，错误在释放锁之后报告
func (r *Registry) with(op string, fn func(pb *ProgressBar)) error {
	ok, err := r.locked(op, fn)
	if !ok && err == nil {
		err = &Error{Op: op, Cause: ErrNoActiveBar}
	}
	if err != nil {
		r.log.Error(err.Error())
	}
	return err
}

// locked 持锁执行 fn。fn 中的 panic 被恢复并作为错误返回，锁总会被释放，
// 进度条在之后的调用中仍然可用。
func (r *Registry) locked(op string, fn func(pb *ProgressBar)) (ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			err = &Error{Op: op, Cause: fmt.Errorf("%w: %v", ErrBarPanicked, rec)}
		}
	}()

	if r.bar == nil {
		return false, nil
	}
	fn(r.bar)
	return true, nil
}
