package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ccp-p/termprogress/pkg/models"
	"github.com/ccp-p/termprogress/pkg/progress"
	"github.com/ccp-p/termprogress/pkg/utils"
)

var (
	configFile = flag.String("config", "", "配置文件路径 (.json/.yaml)")
	mode       = flag.String("mode", models.ModeSimulate, "运行模式 (simulate, watch)")
	maxSteps   = flag.Uint64("max", 81, "进度条总数")
	width      = flag.Int("width", progress.DefaultWidth, "进度条宽度")
	eta        = flag.Bool("eta", true, "显示剩余时间")
	delay      = flag.Int("delay", 100, "模拟模式下每一步的间隔（毫秒）")
	action     = flag.String("action", "Loading", "动作标签")
	folder     = flag.String("folder", "./incoming", "监听模式下监控的文件夹")
	logLevel   = flag.String("log-level", "info", "日志级别 (trace, debug, info, warn, error)")
	logFile    = flag.String("log-file", "", "日志文件路径")
	logMode    = flag.String("log-mode", "fallback", "有进度条时日志的输出方式 (main, fallback, none)")
	showConfig = flag.Bool("show-config", false, "打印最终配置")
)

// 命令行参数名 -> 配置字段
var flagFields = map[string]string{
	"mode":      "mode",
	"max":       "max",
	"width":     "width",
	"eta":       "eta",
	"delay":     "delay_ms",
	"action":    "action",
	"folder":    "watch_folder",
	"log-level": "log_level",
	"log-file":  "log_file",
	"log-mode":  "log_mode",
}

func main() {
	flag.Parse()

	config, err := loadConfig()
	if err != nil {
		color.Red("配置无效: %v", err)
		os.Exit(2)
	}

	if err := utils.InitLogger(config.LogLevel, config.LogFile); err != nil {
		color.Red("初始化日志失败: %v", err)
		os.Exit(1)
	}

	printWelcome()
	if *showConfig {
		config.PrintConfig()
	}

	registry := progress.Default()
	if err := utils.EnableTerminalProgress(registry, config.Disposition()); err != nil {
		logrus.Fatalf("启用进度条日志失败: %v", err)
	}
	defer utils.DisableTerminalProgress()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := utils.WithField("run", uuid.New().String()[:8])
	startTime := time.Now()

	switch config.Mode {
	case models.ModeWatch:
		err = runWatch(ctx, config, registry, log)
	default:
		err = runSimulation(ctx, config, registry, log)
	}

	utils.DisableTerminalProgress()
	if err != nil {
		log.Errorf("运行失败: %v", err)
		os.Exit(1)
	}

	fmt.Printf("处理用时: %s\n", utils.FormatTimeDuration(time.Since(startTime)))
}

func printWelcome() {
	fmt.Println()
	color.Cyan("================================")
	color.Cyan("      终端进度条 - 演示程序      ")
	color.Cyan("================================")
	fmt.Println()
}

// loadConfig 依次应用默认值、配置文件和显式给出的命令行参数
func loadConfig() (*models.Config, error) {
	fmt.Print("加载配置... ")

	config := models.NewDefaultConfig()

	if *configFile != "" {
		if err := config.LoadFromFile(*configFile); err != nil {
			color.Yellow("警告: 加载配置文件失败: %v，将使用默认配置", err)
			config.Reset()
		} else {
			color.Green("成功")
		}
	} else {
		color.Yellow("未指定配置文件，使用默认配置")
	}

	updates := make(map[string]interface{})
	flag.Visit(func(f *flag.Flag) {
		field, ok := flagFields[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case "max":
			updates[field] = *maxSteps
		case "width":
			updates[field] = *width
		case "eta":
			updates[field] = *eta
		case "delay":
			updates[field] = *delay
		case "mode":
			updates[field] = *mode
		case "action":
			updates[field] = *action
		case "folder":
			updates[field] = *folder
		case "log-level":
			updates[field] = *logLevel
		case "log-file":
			updates[field] = *logFile
		case "log-mode":
			updates[field] = *logMode
		}
	})

	if len(updates) > 0 {
		if err := config.Update(updates); err != nil {
			return nil, err
		}
	}

	return config, config.Validate()
}
