package pblog

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink 内部日志需要具备的能力
type Sink interface {
	Enabled(level logrus.Level) bool
	Log(entry *logrus.Entry)
	Flush()
}

// LineSink 把日志按 "LEVEL: message" 逐行写出
type LineSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLineSink 创建逐行输出的内部日志
func NewLineSink(out io.Writer) *LineSink {
	return &LineSink{out: out}
}

// Enabled 所有级别都输出
func (s *LineSink) Enabled(logrus.Level) bool { return true }

// Log 输出一行
func (s *LineSink) Log(entry *logrus.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s: %s\n", levelName(entry.Level), message(entry))
}

// Flush 无缓冲，不需要刷新
func (s *LineSink) Flush() {}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

// LoggerSink 用另一个 logrus.Logger 的级别、格式和输出重新写出日志
//
// 只使用该 logger 的 Formatter 和 Out，不会触发它的 hook，
// 所以不要把它指向安装了同一个 Bridge 的 logger（输出已被丢弃）。
type LoggerSink struct {
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewLoggerSink 创建基于 logrus.Logger 的内部日志
func NewLoggerSink(logger *logrus.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Enabled 使用 logger 的级别
func (s *LoggerSink) Enabled(level logrus.Level) bool {
	return s.logger.IsLevelEnabled(level)
}

// Log 格式化并写出
func (s *LoggerSink) Log(entry *logrus.Entry) {
	if !s.Enabled(entry.Level) {
		return
	}

	e := logrus.NewEntry(s.logger).WithFields(entry.Data).WithTime(entry.Time)
	e.Level = entry.Level
	e.Message = entry.Message

	data, err := s.logger.Formatter.Format(e)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.logger.Out.Write(data)
}

// Flush 如果输出支持 Sync 则同步
func (s *LoggerSink) Flush() {
	if syncer, ok := s.logger.Out.(interface{ Sync() error }); ok {
		_ = syncer.Sync()
	}
}
