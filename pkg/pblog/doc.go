// Package pblog 把 logrus 日志和终端进度条整合在一起。
//
// Bridge 作为 logrus hook 安装后，日志按内部日志的使用方式分发：
//
//   - Main：始终交给内部日志；有进度条时先清除进度条所在行，输出后重绘
//   - Fallback：有进度条时作为信息行输出，否则交给内部日志
//   - None：有进度条时作为信息行输出，否则丢弃
//
// 信息行的标签和颜色由级别决定：Error 红色粗体，Warn 黄色粗体，Info 浅绿粗体，
// Debug 蓝色，Trace 浅灰。
package pblog
