package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ccp-p/termprogress/pkg/pblog"
	"github.com/ccp-p/termprogress/pkg/style"
	"github.com/ccp-p/termprogress/pkg/utils"
)

// 运行模式
const (
	ModeSimulate = "simulate"
	ModeWatch    = "watch"
)

// Config 表示演示程序的配置
type Config struct {
	Mode        string   `json:"mode" yaml:"mode"`                 // 运行模式 (simulate, watch)
	Max         uint64   `json:"max" yaml:"max"`                   // 进度条总数
	Width       int      `json:"width" yaml:"width"`               // 进度条宽度
	ETA         bool     `json:"eta" yaml:"eta"`                   // 显示剩余时间
	DelayMs     int      `json:"delay_ms" yaml:"delay_ms"`         // 模拟模式下每一步的间隔（毫秒）
	Action      string   `json:"action" yaml:"action"`             // 动作标签
	ActionColor string   `json:"action_color" yaml:"action_color"` // 动作标签颜色
	ActionStyle string   `json:"action_style" yaml:"action_style"` // 动作标签样式
	ActionMode  string   `json:"action_mode" yaml:"action_mode"`   // 动作标签对齐方式 (right, left, center)
	LogLevel    string   `json:"log_level" yaml:"log_level"`       // 日志级别
	LogFile     string   `json:"log_file" yaml:"log_file"`         // 日志文件
	LogMode     string   `json:"log_mode" yaml:"log_mode"`         // 有进度条时日志的输出方式 (main, fallback, none)
	WatchFolder string   `json:"watch_folder" yaml:"watch_folder"` // 监听模式下监控的文件夹
	Extensions  []string `json:"extensions" yaml:"extensions"`     // 监听的文件扩展名
	DebounceMs  int      `json:"debounce_ms" yaml:"debounce_ms"`   // 文件事件防抖时间（毫秒）
}

// ConfigValidationError 表示配置验证错误
type ConfigValidationError struct {
	Field   string
	Message string
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("配置验证错误: %s - %s", e.Field, e.Message)
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig() *Config {
	return &Config{
		Mode:        ModeSimulate,
		Max:         81,
		Width:       50,
		ETA:         true,
		DelayMs:     100,
		Action:      "Loading",
		ActionColor: "blue",
		ActionStyle: "bold",
		ActionMode:  "right",
		LogLevel:    "INFO",
		LogFile:     "",
		LogMode:     "fallback",
		WatchFolder: "./incoming",
		Extensions:  []string{".txt", ".log", ".csv", ".json", ".zip"},
		DebounceMs:  500,
	}
}

// Validate 验证配置是否有效
func (c *Config) Validate() error {
	if c.Mode != ModeSimulate && c.Mode != ModeWatch {
		return &ConfigValidationError{"Mode", "必须是 simulate 或 watch"}
	}

	if c.Max < 1 || c.Max > 1000000 {
		return &ConfigValidationError{"Max", "必须在1-1000000之间"}
	}

	if c.Width < 0 || c.Width > 500 {
		return &ConfigValidationError{"Width", "必须在0-500之间"}
	}

	if c.DelayMs < 0 || c.DelayMs > 60000 {
		return &ConfigValidationError{"DelayMs", "必须在0-60000毫秒之间"}
	}

	if _, err := style.ParseColor(c.ActionColor); err != nil {
		return &ConfigValidationError{"ActionColor", err.Error()}
	}

	if _, err := style.ParseStyle(c.ActionStyle); err != nil {
		return &ConfigValidationError{"ActionStyle", err.Error()}
	}

	if _, err := style.ParseMode(c.ActionMode); err != nil {
		return &ConfigValidationError{"ActionMode", err.Error()}
	}

	if _, err := parseLogMode(c.LogMode); err != nil {
		return &ConfigValidationError{"LogMode", err.Error()}
	}

	if c.Mode == ModeWatch {
		if c.WatchFolder == "" {
			return &ConfigValidationError{"WatchFolder", "监听模式下不能为空"}
		}
		if len(c.Extensions) == 0 {
			return &ConfigValidationError{"Extensions", "监听模式下至少需要一个扩展名"}
		}
		if c.DebounceMs < 0 || c.DebounceMs > 60000 {
			return &ConfigValidationError{"DebounceMs", "必须在0-60000毫秒之间"}
		}
	}

	return nil
}

// ActionAttributes 返回动作标签的颜色、样式和对齐方式，需先通过 Validate
func (c *Config) ActionAttributes() (style.Color, style.Style, style.Mode) {
	col, _ := style.ParseColor(c.ActionColor)
	st, _ := style.ParseStyle(c.ActionStyle)
	mode, _ := style.ParseMode(c.ActionMode)
	return col, st, mode
}

// Disposition 返回日志桥接的使用方式，需先通过 Validate
func (c *Config) Disposition() pblog.Disposition {
	d, _ := parseLogMode(c.LogMode)
	return d
}

func parseLogMode(mode string) (pblog.Disposition, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "main":
		return pblog.Main, nil
	case "fallback", "":
		return pblog.Fallback, nil
	case "none":
		return pblog.None, nil
	}
	return pblog.Fallback, fmt.Errorf("未知日志模式: %q", mode)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFromFile 从文件加载配置，.yaml/.yml 按 YAML 解析，其余按 JSON 解析
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("读取配置文件失败: %v", err)
		return err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, c)
	} else {
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		logrus.Errorf("解析配置文件失败: %v", err)
		return err
	}

	if err := c.Validate(); err != nil {
		logrus.Errorf("配置验证失败: %v", err)
		return err
	}

	return nil
}

// SaveToFile 保存配置到文件
func (c *Config) SaveToFile(path string) error {
	if err := utils.EnsureDirExists(filepath.Dir(path)); err != nil {
		logrus.Errorf("创建目录失败: %v", err)
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		logrus.Errorf("序列化配置失败: %v", err)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logrus.Errorf("写入配置文件失败: %v", err)
		return err
	}

	return nil
}

// Update 批量更新配置，失败时回滚
func (c *Config) Update(updates map[string]interface{}) error {
	tempConfig := *c
	tempConfig.Extensions = append([]string(nil), c.Extensions...)

	// 将更新序列化为JSON再反序列化到结构体中
	updateBytes, err := json.Marshal(updates)
	if err != nil {
		return fmt.Errorf("序列化更新数据失败: %w", err)
	}

	if err := json.Unmarshal(updateBytes, c); err != nil {
		*c = tempConfig
		return fmt.Errorf("应用配置更新失败: %w", err)
	}

	if err := c.Validate(); err != nil {
		*c = tempConfig
		return err
	}

	return nil
}

// Reset 重置为默认配置
func (c *Config) Reset() {
	*c = *NewDefaultConfig()
}

// PrintConfig 打印当前配置
func (c *Config) PrintConfig() {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logrus.Errorf("序列化配置失败: %v", err)
		return
	}
	fmt.Println("\n当前配置:")
	fmt.Println(string(bytes))
}
