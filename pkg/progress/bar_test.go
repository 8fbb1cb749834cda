package progress

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ccp-p/termprogress/pkg/style"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// 提取轨道部分（方括号之间）
func trackOf(t *testing.T, line string) string {
	t.Helper()
	start := strings.Index(line, " [")
	end := strings.LastIndex(line, "] ")
	if start < 0 || end < start {
		t.Fatalf("输出中没有轨道: %q", line)
	}
	return line[start+2 : end]
}

func TestNewProgressBar(t *testing.T) {
	pb := New(100)

	assert.Equal(t, uint64(100), pb.Max())
	assert.Equal(t, uint64(0), pb.Progress())
	assert.Equal(t, DefaultWidth, pb.Width())
	assert.Equal(t, "", pb.Action())
	assert.False(t, pb.ETAEnabled())

	assert.True(t, NewWithETA(100).ETAEnabled())
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	pb := New(10, WithWriter(&buf), WithWidth(10))

	pb.SetProgress(5)

	assert.Equal(t, "\x1b[0m\x1b[30m\x1b[0m\x1b[K [====>     ] 5/10\n\x1b[1A", buf.String())
}

func TestDisplayIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	pb := NewWithETA(40, WithWriter(&buf), WithClock(clock.Now))
	for i := 0; i < 13; i++ {
		pb.Inc()
	}
	clock.Advance(3 * time.Second)

	buf.Reset()
	pb.Display()
	first := buf.String()
	buf.Reset()
	pb.Display()

	assert.Equal(t, first, buf.String())
	assert.Equal(t, uint64(13), pb.Progress())
}

func TestTrackCells(t *testing.T) {
	for max := uint64(1); max <= 30; max++ {
		for width := 1; width <= 20; width++ {
			for p := uint64(0); p <= max; p++ {
				pb := New(max, WithWidth(width), WithWriter(nil))
				pb.progress = p
				track := trackOf(t, pb.String())

				want := 0
				for i := 0; i < width; i++ {
					if uint64(i)*max/uint64(width) < p {
						want++
					}
				}
				filled := width - strings.Count(track, " ")
				edges := strings.Count(track, ">")

				msg := fmt.Sprintf("max=%d width=%d progress=%d track=%q", max, width, p, track)
				assert.Len(t, track, width, msg)
				assert.Equal(t, want, filled, msg)
				if filled > 0 {
					assert.Equal(t, 1, edges, msg)
					assert.Equal(t, byte('>'), track[filled-1], msg)
				} else {
					assert.Equal(t, 0, edges, msg)
				}
			}
		}
	}
}

func TestDegenerateInput(t *testing.T) {
	var buf bytes.Buffer
	pb := New(0, WithWriter(&buf))

	pb.SetWidth(0)
	assert.Contains(t, buf.String(), " [] 0/0")

	buf.Reset()
	pb.SetWidth(5)
	pb.SetProgress(3)
	assert.Contains(t, buf.String(), " [=====] 3/0")

	// 超出上限：全部填满，不显示 ETA
	over := New(10, WithWriter(&buf), WithWidth(10))
	over.EnableETA()
	buf.Reset()
	over.SetProgress(15)
	assert.Contains(t, buf.String(), " [==========] 15/10")
	assert.NotContains(t, buf.String(), "ETA")

	// 回退
	buf.Reset()
	over.SetProgress(2)
	assert.Contains(t, buf.String(), "2/10")
}

func TestETA(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	pb := NewWithETA(100, WithWriter(&buf), WithClock(clock.Now))

	for i := 0; i < 25; i++ {
		pb.Inc()
	}
	clock.Advance(10 * time.Second)

	// 25% 用了 10s，剩余 30s
	assert.Contains(t, pb.String(), "25/100 (ETA 30s)")
}

func TestSetProgressResetsTimer(t *testing.T) {
	var buf bytes.Buffer
	clock := newFakeClock()
	pb := NewWithETA(100, WithWriter(&buf), WithClock(clock.Now))

	clock.Advance(time.Hour)
	pb.SetProgress(50)
	assert.Contains(t, pb.String(), "50/100 (ETA 0ms)")

	clock.Advance(2 * time.Second)
	assert.Contains(t, pb.String(), "50/100 (ETA 2000ms)")

	// Inc 不会重置计时器
	pb.Inc()
	assert.Contains(t, pb.String(), "ETA")
	assert.NotContains(t, pb.String(), "ETA 0ms")
}

func TestETANotShown(t *testing.T) {
	clock := newFakeClock()

	pb := NewWithETA(10, WithWriter(nil), WithClock(clock.Now))
	clock.Advance(time.Second)
	assert.NotContains(t, pb.String(), "ETA", "progress == 0")

	pb.progress = 10
	assert.NotContains(t, pb.String(), "ETA", "progress == max")

	zero := NewWithETA(0, WithWriter(nil), WithClock(clock.Now))
	zero.progress = 3
	assert.NotContains(t, zero.String(), "ETA", "max == 0")

	pb.progress = 5
	assert.Contains(t, pb.String(), "ETA")
	pb.DisableETA()
	assert.NotContains(t, pb.String(), "ETA")
	assert.False(t, pb.ETAEnabled())
}

func TestEnableETAResetsProgress(t *testing.T) {
	pb := New(10, WithWriter(nil))
	pb.SetProgress(7)

	pb.EnableETA()

	assert.Equal(t, uint64(0), pb.Progress())
	assert.True(t, pb.ETAEnabled())
}

func TestSetAction(t *testing.T) {
	var buf bytes.Buffer
	pb := New(10, WithWriter(&buf), WithWidth(4))

	pb.SetAction("Loading", style.Blue, style.Bold)
	assert.Equal(t, "     Loading", pb.Action())
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[1m\x1b[34m     Loading\x1b[0m\x1b[K ["))

	pb.SetActionWithMode("Loading", style.Blue, style.Bold, style.Left)
	assert.Equal(t, "Loading     ", pb.Action())

	pb.SetAction("A very long action name", style.Cyan, style.Normal)
	assert.Equal(t, "A very long ", pb.Action())
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	pb := New(10, WithWriter(&buf), WithWidth(10))
	pb.SetProgress(3)
	buf.Reset()

	pb.PrintInfo("Failed", "x", style.Red, style.Normal)

	out := buf.String()
	info := "\x1b[0m\x1b[31m      Failed\x1b[0m x\x1b[K\n"
	assert.True(t, strings.HasPrefix(out, info))
	assert.Equal(t, info+pb.String()+"\n"+style.CursorUp, out)
	assert.Equal(t, uint64(3), pb.Progress())
}

func TestPrintFinalInfo(t *testing.T) {
	var buf bytes.Buffer
	pb := New(10, WithWriter(&buf))
	pb.SetProgress(10)
	buf.Reset()

	pb.PrintFinalInfo("Loading", "Load complete", style.LightGreen, style.Bold)

	assert.Equal(t, "\x1b[1m\x1b[92m     Loading\x1b[0m Load complete\x1b[K\n", buf.String())
	assert.Equal(t, uint64(0), pb.Progress())
}

func TestFinalize(t *testing.T) {
	var buf bytes.Buffer
	pb := New(10, WithWriter(&buf))
	pb.SetProgress(10)
	buf.Reset()

	pb.Finalize()

	assert.Equal(t, "\n", buf.String())
	assert.Equal(t, uint64(0), pb.Progress())
}

func TestSetMax(t *testing.T) {
	var buf bytes.Buffer
	pb := New(10, WithWriter(&buf), WithWidth(4))

	pb.SetMax(20)

	assert.Equal(t, uint64(20), pb.Max())
	assert.Contains(t, buf.String(), "0/20")
}

func TestHugeMax(t *testing.T) {
	// 总数极大时轨道计算不能溢出
	half := uint64(math.MaxUint64 / 2)
	pb := New(half, WithWriter(nil), WithWidth(10))
	pb.SetProgress(half / 2)
	assert.Equal(t, "====>     ", trackOf(t, pb.String()))

	small := New(10, WithWriter(nil), WithWidth(10))
	small.SetProgress(5)
	assert.Equal(t, trackOf(t, small.String()), trackOf(t, pb.String()))
}

func TestETAOutOfRange(t *testing.T) {
	clock := newFakeClock()
	pb := NewWithETA(1_000_000_000, WithWriter(nil), WithClock(clock.Now))

	pb.Inc()
	clock.Advance(10 * time.Second)

	// 剩余时间超出 time.Duration 的范围时取最大值，而不是变成负数
	line := pb.String()
	assert.Contains(t, line, "1/1000000000 (ETA 106752 days)")
	assert.NotContains(t, line, "-")
}
