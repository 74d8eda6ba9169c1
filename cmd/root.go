package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupfind/pkg/config"
	"github.com/moyu-x/dupfind/pkg/logger"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dupfind",
	Short: "按文件内容哈希查找重复文件",
	Long: `dupfind 是一个命令行工具，通过比较文件内容的加密哈希（而不是文件名或大小）
找出目录树中内容完全相同的文件。

主要功能:
- 广度优先遍历目录，可选递归
- 默认跳过隐藏文件和目录
- 以固定大小的缓冲区流式计算哈希，内存占用与文件大小无关
- 只报告重复分组，不删除任何文件`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setup 加载配置并初始化日志，子命令在执行前调用
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.File); err != nil {
		return nil, err
	}

	logger.Get().Debug().Msg("加载配置完成")
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件 (默认 $HOME/.dupfind/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示调试日志")
	rootCmd.PersistentFlags().String("log-level", "warn", "日志级别 (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "日志文件路径")
}
