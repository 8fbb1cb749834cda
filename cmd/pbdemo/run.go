package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ccp-p/termprogress/internal/watcher"
	"github.com/ccp-p/termprogress/pkg/models"
	"github.com/ccp-p/termprogress/pkg/progress"
	"github.com/ccp-p/termprogress/pkg/style"
)

// initBar 按配置创建进度条并设置动作标签
func initBar(registry *progress.Registry, config *models.Config) {
	if config.ETA {
		registry.InitWithETA(config.Max)
	} else {
		registry.Init(config.Max)
	}
	_ = registry.SetWidth(config.Width)

	c, s, m := config.ActionAttributes()
	_ = registry.SetActionWithMode(config.Action, c, s, m)
}

// runSimulation 模拟逐页加载，第 14 页失败，第 41 页输出一条成功日志
func runSimulation(ctx context.Context, config *models.Config, registry *progress.Registry, log *logrus.Entry) error {
	log.Info("开始模拟加载")
	initBar(registry, config)

	step := time.Duration(config.DelayMs) * time.Millisecond
	for i := uint64(0); i < config.Max; i++ {
		select {
		case <-ctx.Done():
			log.Warnf("已取消，完成 %d/%d", i, config.Max)
			return registry.Finalize()
		case <-time.After(step):
		}

		switch i {
		case 14:
			log.WithField("page", i).Error("Failed to load https://zefzef.zef")
		case 41:
			log.WithField("page", i).Info("Success loading https://example.com")
		}

		if err := registry.Inc(); err != nil {
			return err
		}
	}

	if err := registry.PrintFinalInfo("Done", fmt.Sprintf("%d pages loaded", config.Max), style.LightGreen, style.Bold); err != nil {
		return err
	}
	// 最后一行信息已经替代了进度条，直接清空注册表
	registry.SetActive(nil)
	log.Info("加载完成")
	return nil
}

// runWatch 监控文件夹，每出现一个匹配的文件进度条前进一格
func runWatch(ctx context.Context, config *models.Config, registry *progress.Registry, log *logrus.Entry) error {
	initBar(registry, config)

	handler := watcher.NewProgressHandler(registry, config.Max)
	debounce := time.Duration(config.DebounceMs) * time.Millisecond
	stop, err := watcher.StartFolderMonitoring(config.WatchFolder, config.Extensions, handler, debounce)
	if err != nil {
		_ = registry.Finalize()
		return err
	}
	defer stop()

	select {
	case <-handler.Done():
		log.Infof("已收到 %d 个文件", handler.Count())
	case <-ctx.Done():
		log.Warnf("已取消，收到 %d/%d 个文件", handler.Count(), config.Max)
	}

	return registry.Finalize()
}
