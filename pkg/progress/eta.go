package progress

import (
	"fmt"
	"math"
	"time"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatETA 把剩余时间格式化为易读字符串，每一档都对自己的单位向上取整：
// ≤3000ms 显示毫秒，≤110s 显示秒，≤110 分钟显示分钟，≤46 小时显示小时，其余显示天
func FormatETA(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	switch {
	case ms <= 3000:
		return fmt.Sprintf("%dms", ceil(ms, 1))
	case ms <= 110*msPerSecond:
		return fmt.Sprintf("%ds", ceil(ms, msPerSecond))
	case ms <= 110*msPerMinute:
		return fmt.Sprintf("%d minutes", ceil(ms, msPerMinute))
	case ms <= 46*msPerHour:
		return fmt.Sprintf("%d hours", ceil(ms, msPerHour))
	default:
		return fmt.Sprintf("%d days", ceil(ms, msPerDay))
	}
}

func ceil(ms float64, unit float64) int64 {
	return int64(math.Ceil(ms / unit))
}

// estimate 计算剩余时间。只有计时器存在且 0 < progress < max 时才有结果
func (pb *ProgressBar) estimate() (time.Duration, bool) {
	if pb.timer == nil || pb.max == 0 || pb.progress == 0 || pb.progress >= pb.max {
		return 0, false
	}

	elapsed := pb.now().Sub(*pb.timer)
	if elapsed < 0 {
		elapsed = 0
	}

	rate := float64(pb.progress) / float64(pb.max)
	remaining := float64(elapsed) / rate * (1 - rate)
	// 进度极小时剩余时间会超出 time.Duration 的范围
	if remaining >= math.MaxInt64 {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(remaining), true
}
