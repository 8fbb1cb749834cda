package watcher

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccp-p/termprogress/pkg/progress"
)

func newTestRegistry(out io.Writer) *progress.Registry {
	diag := logrus.New()
	diag.SetOutput(io.Discard)
	return progress.NewRegistry(
		progress.WithDiagnostics(diag),
		progress.WithBarOptions(progress.WithWriter(out), progress.WithWidth(10)),
	)
}

// 记录事件的处理器
type recordingHandler struct {
	created chan string
}

func (h *recordingHandler) OnFileCreated(filePath string)  { h.created <- filePath }
func (h *recordingHandler) OnFileModified(filePath string) {}
func (h *recordingHandler) OnFileDeleted(filePath string)  {}

func TestIsTargetFile(t *testing.T) {
	dir := t.TempDir()
	monitor, err := NewFolderMonitor(dir, []string{"MP3", ".wav"}, nil, time.Millisecond)
	require.NoError(t, err)
	defer monitor.Stop()

	mp3 := filepath.Join(dir, "song.Mp3")
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(mp3, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))

	assert.True(t, monitor.isTargetFile(mp3))
	assert.False(t, monitor.isTargetFile(txt))
	assert.False(t, monitor.isTargetFile(filepath.Join(dir, "missing.wav")))
	assert.False(t, monitor.isTargetFile(dir))
}

func TestFolderMonitorDetectsFiles(t *testing.T) {
	dir := t.TempDir()
	handler := &recordingHandler{created: make(chan string, 4)}
	monitor, err := NewFolderMonitor(dir, []string{".txt"}, handler, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, monitor.Start())
	defer monitor.Stop()

	target := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.tmp"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	select {
	case got := <-handler.created:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("没有收到文件创建事件")
	}

	monitor.Stop()
	monitor.Stop()
}

func TestProgressHandler(t *testing.T) {
	var out bytes.Buffer
	registry := newTestRegistry(&out)
	registry.Init(2)
	handler := NewProgressHandler(registry, 2)

	handler.OnFileCreated("/in/a.txt")
	handler.OnFileCreated("/in/a.txt")
	assert.Equal(t, 1, handler.Count())

	select {
	case <-handler.Done():
		t.Fatal("尚未达到目标数量")
	default:
	}

	handler.OnFileDeleted("/in/a.txt")
	assert.Equal(t, 0, handler.Count())
	handler.OnFileCreated("/in/b.txt")
	handler.OnFileCreated("/in/c.txt")

	select {
	case <-handler.Done():
	default:
		t.Fatal("达到目标数量后应该关闭 Done")
	}

	p, _ := registry.Progress()
	assert.Equal(t, uint64(3), p)
	assert.Contains(t, out.String(), "       Found\x1b[0m a.txt")
	assert.Contains(t, out.String(), "     Removed\x1b[0m a.txt")
	assert.Contains(t, out.String(), "3/2")
}

func TestStartFolderMonitoring(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "incoming")
	registry := newTestRegistry(io.Discard)
	registry.Init(1)
	handler := NewProgressHandler(registry, 1)

	stop, err := StartFolderMonitoring(dir, []string{".log"}, handler, 10*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.log"), []byte("x"), 0644))

	select {
	case <-handler.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("进度条没有前进")
	}
	p, _ := registry.Progress()
	assert.Equal(t, uint64(1), p)
}
