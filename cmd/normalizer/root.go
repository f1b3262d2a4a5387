/*
 * @author: sun977
 * @date: 2026.02.14
 * @description: Cobra Root Command 定义
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	env     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "neonorm",
	Short: "NeoNorm 网络资产清单归一化引擎",
	Long: `NeoNorm 对网络资产清单做确定性校验与归一化。
它可以作为HTTP服务对外提供归一化接口,也可以作为独立的CLI批处理工具运行.

示例:
  1.启动服务模式
	neonorm serve
  2.单机批处理
	neonorm run --input inventory_raw.csv --output-dir output
`,
}

func Execute() {
	// 全局 Panic Recovery
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] neonorm crashed unexpectedly: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// 全局 Flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认: ./configs)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "运行环境 (development, test, production)")
}
