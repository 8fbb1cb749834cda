package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/ccp-p/termprogress/pkg/progress"
	"github.com/ccp-p/termprogress/pkg/style"
	"github.com/ccp-p/termprogress/pkg/utils"
)

// ProgressHandler 每出现一个新文件，进度条前进一格
type ProgressHandler struct {
	registry       *progress.Registry
	target         uint64
	processedFiles map[string]bool
	mutex          sync.Mutex
	done           chan struct{}
	doneOnce       sync.Once
}

// NewProgressHandler 创建进度处理器，处理 target 个文件后 Done 被关闭
func NewProgressHandler(registry *progress.Registry, target uint64) *ProgressHandler {
	return &ProgressHandler{
		registry:       registry,
		target:         target,
		processedFiles: make(map[string]bool),
		done:           make(chan struct{}),
	}
}

// Done 达到目标数量时关闭
func (h *ProgressHandler) Done() <-chan struct{} {
	return h.done
}

// Count 已处理的文件数
func (h *ProgressHandler) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.processedFiles)
}

// OnFileCreated 处理文件创建事件
func (h *ProgressHandler) OnFileCreated(filePath string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	// 检查文件是否已处理
	if h.processedFiles[filePath] {
		return
	}
	h.processedFiles[filePath] = true

	_ = h.registry.PrintInfo("Found", filepath.Base(filePath), style.LightGreen, style.Normal)
	_ = h.registry.Inc()

	if uint64(len(h.processedFiles)) >= h.target {
		h.doneOnce.Do(func() { close(h.done) })
	}
}

// OnFileModified 文件在防抖时间内再次变化
func (h *ProgressHandler) OnFileModified(filePath string) {
	utils.Debug("文件仍在写入: %s", filePath)
}

// OnFileDeleted 文件被删除后，再次出现时会重新计数
func (h *ProgressHandler) OnFileDeleted(filePath string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.processedFiles[filePath] {
		delete(h.processedFiles, filePath)
		_ = h.registry.PrintInfo("Removed", filepath.Base(filePath), style.Yellow, style.Normal)
	}
}

// StartFolderMonitoring 开始监控文件夹并驱动进度条，返回停止函数
func StartFolderMonitoring(folder string, extensions []string, handler *ProgressHandler, debounce time.Duration) (func(), error) {
	monitor, err := NewFolderMonitor(folder, extensions, handler, debounce)
	if err != nil {
		return nil, err
	}

	if err := monitor.Start(); err != nil {
		monitor.watcher.Close()
		return nil, err
	}

	return monitor.Stop, nil
}
