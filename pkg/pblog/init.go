package pblog

import "github.com/sirupsen/logrus"

// 以下函数把日志桥接安装到 logrus 标准 logger，进程内只能成功一次。

// InitLogger 使用默认设置安装
func InitLogger() error {
	return InitLoggerWithOptions()
}

// InitLoggerWithLevel 只指定日志级别
func InitLoggerWithLevel(level logrus.Level) error {
	return InitLoggerWithOptions(WithLevel(level))
}

// InitLoggerWithFilter 只指定过滤函数
func InitLoggerWithFilter(filter func(entry *logrus.Entry) bool) error {
	return InitLoggerWithOptions(WithFilter(filter))
}

// InitLoggerWithFallback 指定没有进度条时使用的内部日志
func InitLoggerWithFallback(fallback Sink) error {
	return InitLoggerWithOptions(WithInner(FallbackInner(fallback)))
}

// InitLoggerWithFallbackAndLevel 指定内部日志和日志级别
func InitLoggerWithFallbackAndLevel(fallback Sink, level logrus.Level) error {
	return InitLoggerWithOptions(WithInner(FallbackInner(fallback)), WithLevel(level))
}

// InitLoggerWithOptions 使用任意选项安装
//
// 与 logrus 自带的输出配合：没有进度条时按原来的格式输出，有进度条时走信息行。
//
//	fallback := logrus.New()
//	fallback.SetLevel(logrus.InfoLevel)
//	err := pblog.InitLoggerWithOptions(
//	    pblog.WithInner(pblog.FallbackInner(pblog.NewLoggerSink(fallback))),
//	)
func InitLoggerWithOptions(opts ...Option) error {
	return New(opts...).Install(logrus.StandardLogger())
}
