package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moyu-x/dupfind/pkg/hasher"
)

var hashCmd = &cobra.Command{
	Use:   "hash <files...>",
	Short: "输出文件的内容指纹",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHash,
}

func runHash(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	algo, err := hasher.Lookup(cfg.Hash.Algorithm)
	if err != nil {
		return err
	}
	h := hasher.New(afero.NewOsFs(), algo, cfg.Hash.BufferSize)

	failed := 0
	for _, path := range args {
		sum, err := h.Hash(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "error hashing file: `%s` %v\n", path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
	}

	if failed > 0 {
		return fmt.Errorf("%d 个文件计算哈希失败", failed)
	}
	return nil
}

func init() {
	hashCmd.Flags().StringP("algorithm", "a", "sha256", "哈希算法")
	hashCmd.Flags().Int("buffer-size", 4096, "读取缓冲区大小（字节）")

	rootCmd.AddCommand(hashCmd)
}
