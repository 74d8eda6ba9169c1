package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moyu-x/dupfind/pkg/config"
	"github.com/moyu-x/dupfind/pkg/finder"
	"github.com/moyu-x/dupfind/pkg/logger"
	"github.com/moyu-x/dupfind/pkg/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan --path <directory>",
	Short: "扫描目录并报告内容相同的文件",
	Long: `遍历指定目录，对每个文件计算内容哈希，按哈希分组后输出重复文件。
遍历中遇到无法读取的目录或文件时输出错误信息并继续。`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("path")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	rc, err := config.Validate(cfg.RunConfig(path))
	if err != nil {
		logger.Get().Error().Err(err).Msg("配置无效")
		return err
	}

	fs := afero.NewOsFs()
	f, err := finder.New(fs, rc, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	idx := f.Run()
	rep := report.Build(fs, idx.Finalize())

	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), rep)
	}
	return report.WriteText(cmd.OutOrStdout(), rep, !noColor)
}

func init() {
	scanCmd.Flags().StringP("path", "p", "", "要分析的目录 (必需)")
	scanCmd.Flags().BoolP("recurse", "r", false, "递归扫描子目录")
	scanCmd.Flags().Bool("include-hidden", false, "包含隐藏文件和目录")
	scanCmd.Flags().Bool("follow-symlinks", false, "跟随符号链接")
	scanCmd.Flags().String("hidden-detection", "auto", "隐藏判断方式: auto, attribute, dotfile, none")
	scanCmd.Flags().StringP("algorithm", "a", "sha256", "哈希算法")
	scanCmd.Flags().Int("buffer-size", 4096, "读取缓冲区大小（字节）")
	scanCmd.Flags().Bool("json", false, "以 JSON 格式输出")
	scanCmd.Flags().Bool("no-color", false, "不使用颜色")

	if err := scanCmd.MarkFlagRequired("path"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(scanCmd)
}
