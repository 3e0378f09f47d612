package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shouni/go-top-words/pkg/decode"
	"github.com/shouni/go-top-words/pkg/wordlist"
)

// Extractor は、Fetcher と Decoder を使って単語集合の抽出プロセスを管理します。
type Extractor struct {
	fetcher    Fetcher
	decoder    *decode.Decoder
	tableIndex int
	logger     *zap.Logger
}

// Option は Extractor の設定を行うための関数型です。
type Option func(*Extractor)

// WithDecoder は文字コードの変換方法を差し替えます。既定は ISO-8859-2 です。
func WithDecoder(d *decode.Decoder) Option {
	return func(e *Extractor) {
		if d != nil {
			e.decoder = d
		}
	}
}

// WithTableIndex は対象テーブルの位置を差し替えます。既定は wordlist.DataTableIndex です。
func WithTableIndex(i int) Option {
	return func(e *Extractor) {
		e.tableIndex = i
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher, opts ...Option) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("extract.NewExtractor: Fetcher cannot be nil")
	}
	e := &Extractor{
		fetcher:    fetcher,
		decoder:    decode.ISO88592(),
		tableIndex: wordlist.DataTableIndex,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FetchWords は指定されたURLからページを取得し、単語の集合を抽出します。
func (e *Extractor) FetchWords(ctx context.Context, url string) (wordlist.WordSet, error) {
	// 1. Fetcherから生のバイト配列を取得 (通信の責務)
	raw, err := e.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	// 2. ヘッダーの charset は無視して固定の文字コードで解釈 (変換の責務)
	text, err := e.decoder.Decode(raw)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("ページを変換しました",
		zap.String("encoding", e.decoder.Name()),
		zap.Int("raw_bytes", len(raw)),
		zap.Int("text_bytes", len(text)),
	)

	// 3. テーブルから単語を抽出 (解析の責務)
	words, err := wordlist.Extract(strings.NewReader(text), e.tableIndex)
	if err != nil {
		return nil, fmt.Errorf("単語の抽出に失敗しました (URL: %s): %w", url, err)
	}
	e.logger.Debug("単語を抽出しました", zap.Int("count", words.Len()))

	return words, nil
}
