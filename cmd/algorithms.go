package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupfind/internal"
	"github.com/moyu-x/dupfind/pkg/hasher"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "列出支持的哈希算法",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range hasher.Names() {
			algo, _ := hasher.Lookup(name)
			note := ""
			if name == internal.DefaultAlgorithm {
				note = " (default)"
			}
			if !algo.Cryptographic {
				note += " (non-cryptographic)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, note)
		}
	},
}

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", internal.AppName, version)
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(versionCmd)
}
