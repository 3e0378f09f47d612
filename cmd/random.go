package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-top-words/internal/pipeline"
)

var seed uint64

// runRandom は1語を選び、標準出力に1行だけ書き出します。
func runRandom(cmd *cobra.Command, args []string) error {
	defer syncLogger()

	cfg := newPipelineConfig()
	if cmd.Flags().Changed("seed") {
		cfg.Seed = &seed
	}

	res, err := pipeline.Run(commandContext(cmd), cfg, logger)
	if err != nil {
		return fmt.Errorf("単語の取得に失敗しました: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Selected)
	return err
}

var randomCmd = &cobra.Command{
	Use:     "random",
	Aliases: []string{"pick"},
	Short:   "スロベニア語の頻出2000語からランダムに1語を表示します",
	Long: `bos.zrc-sazu.si の頻出2000語ページを取得し、表の単語から一様ランダムに1語を選んで表示します。
出力は単語1行のみです。`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRandom,
}

func init() {
	randomCmd.Flags().Uint64Var(&seed, "seed", 0, "乱数のシード (再現用)")
	_ = randomCmd.Flags().MarkHidden("seed")
}
