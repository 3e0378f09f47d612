package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shouni/go-top-words/internal/pipeline"
)

// --- グローバル定数 ---

const (
	appName           = "top-words"
	defaultTimeoutSec = 30 // 秒。0 はタイムアウトなし
	defaultMaxRetries = 0  // 取得は1回のみ
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	TimeoutSec int    // --timeout タイムアウト
	MaxRetries uint64 // --max-retries リトライ回数
}

var (
	Flags AppFlags

	// logger は標準エラー出力に書き込みます。標準出力は結果専用です。
	logger = zap.NewNop()

	// sourceURL は取得元です。テストでのみ差し替えます。
	sourceURL = pipeline.SourceURL
)

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒, 0 で無制限）",
	)
	rootCmd.PersistentFlags().Uint64Var(
		&Flags.MaxRetries,
		"max-retries",
		defaultMaxRetries,
		"5xx・ネットワークエラー時のリトライ最大回数",
	)
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// NOTE: clibaseの PersistentPreRunE チェーンにより、clibase.Flags.Verbose はこの関数実行前に設定済み
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	if Flags.TimeoutSec < 0 {
		return fmt.Errorf("--timeout には 0 以上を指定してください: %d", Flags.TimeoutSec)
	}

	l, err := newLogger(clibase.Flags.Verbose)
	if err != nil {
		return fmt.Errorf("ロガーの初期化に失敗しました: %w", err)
	}
	logger = l

	logger.Debug("設定を読み込みました",
		zap.Duration("timeout", clientTimeout()),
		zap.Uint64("max_retries", Flags.MaxRetries),
	)
	return nil
}

// newLogger は標準エラー出力向けのロガーを生成します。
// 通常はエラーのみ、verbose の場合はデバッグログまで出力します。
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

func clientTimeout() time.Duration {
	return time.Duration(Flags.TimeoutSec) * time.Second
}

// newPipelineConfig はフラグから pipeline.Config を組み立てます。
func newPipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.URL = sourceURL
	cfg.Timeout = clientTimeout()
	cfg.MaxRetries = Flags.MaxRetries
	return cfg
}

// commandContext は cmd のコンテキストを返します。未設定の場合は Background です。
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// syncLogger はバッファ済みのログを書き出します。
// os.Exit では defer が実行されないため、コマンド処理の終了時に呼び出します。
func syncLogger() {
	_ = logger.Sync()
}

// --- エントリポイント ---

// newRootCmd は clibase のルートコマンドを元に、引数なしで1語を表示するルートを構築します。
func newRootCmd() *cobra.Command {
	rootCmd := clibase.NewRootCmd(appName, addAppPersistentFlags, initAppPreRunE)
	rootCmd.Short = randomCmd.Short
	rootCmd.Long = randomCmd.Long
	rootCmd.Args = cobra.NoArgs
	// clibase の既定 Run はヘルプ表示のため置き換える
	rootCmd.Run = nil
	rootCmd.RunE = runRandom
	rootCmd.SilenceUsage = true

	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "乱数のシード (再現用)")
	_ = rootCmd.Flags().MarkHidden("seed")

	// 設定ファイルは読み込まないため、clibase の --config は表示しない
	_ = rootCmd.PersistentFlags().MarkHidden("config")

	rootCmd.AddCommand(randomCmd, listCmd)
	return rootCmd
}

// Execute はルートコマンドを実行します。
// エラー時は cobra が診断メッセージを標準エラー出力に書き、非ゼロで終了します。
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		syncLogger()
		os.Exit(1)
	}
}
