package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ccp-p/termprogress/pkg/pblog"
	"github.com/ccp-p/termprogress/pkg/progress"
)

// 日志级别常量
const (
	LogLevelVerbose = "VERBOSE"
	LogLevelNormal  = "INFO"
	LogLevelQuiet   = "WARN"
)

var (
	// Log 全局日志实例
	Log *logrus.Logger
	// 启用终端进度条之前的日志输出，关闭时恢复
	savedOutput io.Writer
)

// InitLogger 初始化日志系统
// level: 日志级别 (VERBOSE/INFO/WARN，也接受 logrus 的级别名)
// logFile: 日志文件路径，空字符串表示仅输出到控制台
func InitLogger(level string, logFile string) error {
	logger := logrus.New()

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if logFile != "" {
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("创建日志目录失败: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}

		// 同时输出到文件和控制台
		logger.SetOutput(io.MultiWriter(os.Stdout, file))
	} else {
		logger.SetOutput(os.Stdout)
	}

	logger.SetLevel(ParseLevel(level))

	Log = logger
	savedOutput = nil
	return nil
}

// ParseLevel 解析日志级别，无法识别时使用 Info
func ParseLevel(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case LogLevelVerbose:
		return logrus.DebugLevel
	case LogLevelNormal:
		return logrus.InfoLevel
	case LogLevelQuiet:
		return logrus.WarnLevel
	}
	if l, err := logrus.ParseLevel(level); err == nil {
		return l
	}
	return logrus.InfoLevel
}

// EnableTerminalProgress 启用终端进度条模式 - 之后的日志经由进度条输出
// mode 决定原来的输出如何使用，见 pblog.Disposition
func EnableTerminalProgress(registry *progress.Registry, mode pblog.Disposition) error {
	if Log == nil {
		return errors.New("日志系统未初始化")
	}
	if pblog.HasBridge(Log) {
		return pblog.ErrAlreadyInstalled
	}

	// 用原来的输出、格式和级别构造内部日志
	previous := logrus.New()
	previous.SetOutput(Log.Out)
	previous.SetFormatter(Log.Formatter)
	previous.SetLevel(Log.GetLevel())
	sink := pblog.NewLoggerSink(previous)

	var inner pblog.Inner
	switch mode {
	case pblog.Main:
		inner = pblog.MainInner(sink)
	case pblog.None:
		inner = pblog.NoInner()
	default:
		inner = pblog.FallbackInner(sink)
	}

	bridge := pblog.New(
		pblog.WithRegistry(registry),
		pblog.WithInner(inner),
		pblog.WithLevel(Log.GetLevel()),
	)

	out := Log.Out
	if err := bridge.Install(Log); err != nil {
		return fmt.Errorf("安装进度条日志失败: %w", err)
	}
	savedOutput = out
	return nil
}

// DisableTerminalProgress 禁用终端进度条模式 - 日志恢复到原来的输出
func DisableTerminalProgress() {
	if Log == nil {
		return
	}
	pblog.Detach(Log)
	if savedOutput != nil {
		Log.SetOutput(savedOutput)
		savedOutput = nil
	}
}

// Debug 输出调试日志
func Debug(format string, args ...interface{}) {
	if Log != nil {
		if len(args) > 0 {
			Log.Debugf(format, args...)
		} else {
			Log.Debug(format)
		}
	}
}

// Info 输出信息日志
func Info(format string, args ...interface{}) {
	if Log != nil {
		if len(args) > 0 {
			Log.Infof(format, args...)
		} else {
			Log.Info(format)
		}
	}
}

// Warn 输出警告日志
func Warn(format string, args ...interface{}) {
	if Log != nil {
		if len(args) > 0 {
			Log.Warnf(format, args...)
		} else {
			Log.Warn(format)
		}
	}
}

// Error 输出错误日志
func Error(format string, args ...interface{}) {
	if Log != nil {
		if len(args) > 0 {
			Log.Errorf(format, args...)
		} else {
			Log.Error(format)
		}
	}
}

// WithField 创建带字段的日志条目
func WithField(key string, value interface{}) *logrus.Entry {
	if Log != nil {
		return Log.WithField(key, value)
	}
	return nil
}

// WithFields 创建带多个字段的日志条目
func WithFields(fields logrus.Fields) *logrus.Entry {
	if Log != nil {
		return Log.WithFields(fields)
	}
	return nil
}
