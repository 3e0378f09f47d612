package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shouni/go-top-words/pkg/decode"
	"github.com/shouni/go-top-words/pkg/extract"
	"github.com/shouni/go-top-words/pkg/httpclient"
	"github.com/shouni/go-top-words/pkg/selector"
	"github.com/shouni/go-top-words/pkg/types"
	"github.com/shouni/go-top-words/pkg/wordlist"
)

const (
	// SourceURL は、スロベニア語の頻出2000語を掲載しているページです。
	SourceURL = "http://bos.zrc-sazu.si/a_top2000.html"
	// SourceEncoding は、取得元ページの実際の文字コードです。サーバーが宣言する charset は信用しません。
	SourceEncoding = decode.DefaultLabel
)

// Config は1回の実行に必要な設定を保持します。
type Config struct {
	URL        string
	Encoding   string
	TableIndex int
	Timeout    time.Duration // HTTPクライアントのタイムアウト。0 の場合は無制限
	MaxRetries uint64
	Seed       *uint64 // nil の場合は実行ごとにランダム
}

// DefaultConfig は固定の取得元と既定値を返します。
func DefaultConfig() Config {
	return Config{
		URL:        SourceURL,
		Encoding:   SourceEncoding,
		TableIndex: wordlist.DataTableIndex,
		Timeout:    httpclient.DefaultHTTPTimeout,
		MaxRetries: 0,
	}
}

// Words は、ページを取得して単語を抽出し、ソート済みの WordList を返します。
func Words(ctx context.Context, cfg Config, logger *zap.Logger) (wordlist.WordList, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. 依存性の初期化
	d, err := decode.New(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("Decoderの初期化エラー: %w", err)
	}
	fetcher := httpclient.New(cfg.Timeout,
		httpclient.WithMaxRetries(cfg.MaxRetries),
		httpclient.WithLogger(logger),
	)
	extractor, err := extract.NewExtractor(fetcher,
		extract.WithDecoder(d),
		extract.WithTableIndex(cfg.TableIndex),
		extract.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}

	// 2. 取得・変換・抽出
	words, err := extractor.FetchWords(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}

	// 3. ソート
	list := wordlist.Sort(words)
	logger.Debug("単語リストを作成しました", zap.String("url", cfg.URL), zap.Int("count", len(list)))
	return list, nil
}

// Run は、取得 → 変換 → 抽出 → 選択を順に一度だけ実行するメインの処理パイプラインです。
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (types.Result, error) {
	list, err := Words(ctx, cfg, logger)
	if err != nil {
		return types.Result{}, err
	}

	sel := selector.New()
	if cfg.Seed != nil {
		sel = selector.NewWithSeed(*cfg.Seed)
	}

	word, err := sel.Pick(list)
	if err != nil {
		return types.Result{}, fmt.Errorf("単語の選択に失敗しました (URL: %s): %w", cfg.URL, err)
	}

	return types.Result{
		URL:      cfg.URL,
		Words:    list,
		Selected: word,
	}, nil
}
