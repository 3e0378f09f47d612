package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-top-words/internal/pipeline"
)

// runList は抽出・ソート済みの単語を1行に1語ずつ出力します。
func runList(cmd *cobra.Command, args []string) error {
	defer syncLogger()

	list, err := pipeline.Words(commandContext(cmd), newPipelineConfig(), logger)
	if err != nil {
		return fmt.Errorf("単語リストの取得に失敗しました: %w", err)
	}
	if len(list) == 0 {
		logger.Warn("条件を満たす単語が見つかりませんでした", zap.String("url", sourceURL))
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, word := range list {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return w.Flush()
}

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "抽出した単語をソート順にすべて表示します",
	Long:         `取得元ページの表から抽出した単語を、コードポイント順 (č・š・ž で始まる語は末尾) で1行ずつ表示します。`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runList,
}
