package progress

import (
	"sync"

	"github.com/ccp-p/termprogress/pkg/style"
)

var (
	// 全局注册表实例
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default 获取进程级的全局注册表
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// 以下函数代理到 Default()。没有活动进度条时错误已输出到标准错误，这里直接丢弃。

// HasActive 是否存在活动进度条
func HasActive() bool { return Default().HasActive() }

// SetActive 替换全局进度条
func SetActive(pb *ProgressBar) { Default().SetActive(pb) }

// Init 创建全局进度条
func Init(max uint64) { Default().Init(max) }

// InitWithETA 创建带 ETA 的全局进度条
func InitWithETA(max uint64) { Default().InitWithETA(max) }

// SetProgress 设置全局进度条的进度
func SetProgress(p uint64) { _ = Default().SetProgress(p) }

// Inc 全局进度条进度加一
func Inc() { _ = Default().Inc() }

// SetWidth 设置全局进度条宽度
func SetWidth(w int) { _ = Default().SetWidth(w) }

// SetMax 设置全局进度条总数
func SetMax(m uint64) { _ = Default().SetMax(m) }

// EnableETA 启用全局进度条的 ETA（进度清零）
func EnableETA() { _ = Default().EnableETA() }

// DisableETA 关闭全局进度条的 ETA
func DisableETA() { _ = Default().DisableETA() }

// SetAction 设置全局进度条的动作标签
func SetAction(action string, c style.Color, s style.Style) {
	_ = Default().SetAction(action, c, s)
}

// SetActionWithMode 设置全局进度条的动作标签和对齐方式
func SetActionWithMode(action string, c style.Color, s style.Style, mode style.Mode) {
	_ = Default().SetActionWithMode(action, c, s, mode)
}

// PrintInfo 通过全局进度条输出一行信息
func PrintInfo(tag, text string, c style.Color, s style.Style) {
	_ = Default().PrintInfo(tag, text, c, s)
}

// PrintFinalInfo 通过全局进度条输出最后一行信息
func PrintFinalInfo(tag, text string, c style.Color, s style.Style) {
	_ = Default().PrintFinalInfo(tag, text, c, s)
}

// Finalize 结束并移除全局进度条
func Finalize() { _ = Default().Finalize() }
