// Package progress 提供单行原地刷新的终端进度条。
//
// 进度条输出格式：
//
//	<动作标签(12字符)> [=====>      ] 14/81 (ETA 5s)
//
// 信息行会插入到进度条上方，进度条随后在下一行重新绘制。
//
// # 用法
//
//	progress.InitWithETA(81)
//	progress.SetAction("Loading", style.Blue, style.Bold)
//	for i := 0; i < 81; i++ {
//	    // ...
//	    progress.Inc()
//	}
//	progress.Finalize()
//
// 包级函数代理到 Default() 返回的全局 Registry；需要隔离时（例如测试）
// 可以用 NewRegistry 创建独立实例。
package progress
