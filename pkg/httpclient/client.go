package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shouni/go-top-words/pkg/retry"
	"github.com/shouni/go-top-words/pkg/types"
)

const (
	// DefaultHTTPTimeout は、デフォルトのHTTPタイムアウトです。
	DefaultHTTPTimeout = 30 * time.Second
	// MaxBodySize はレスポンスボディの最大読み込みサイズです。
	MaxBodySize = int64(10 * 1024 * 1024) // 10MB

	// エラーメッセージに含めるボディの最大長
	maxErrorBodyLen = 512
)

// Doer は、標準の *http.Client.Do()と互換性のあるHTTPクライアントのインターフェースを定義します。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NonRetryableHTTPError はHTTP 4xx系のステータスコードエラーを示すカスタムエラー型です。
type NonRetryableHTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *NonRetryableHTTPError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("HTTPクライアントエラー (非リトライ対象): ステータスコード %d, ボディ: %s", e.StatusCode, truncateBody(e.Body))
	}
	return fmt.Sprintf("HTTPクライアントエラー (非リトライ対象): ステータスコード %d, ボディなし", e.StatusCode)
}

// Client は1回のGETリクエストと、任意の指数バックオフ付きリトライを管理します。
type Client struct {
	httpClient  Doer
	retryConfig retry.Config
	logger      *zap.Logger
}

// Option はClientの設定を行うための関数型です。
type Option func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithMaxRetries は最大リトライ回数を設定します。0 の場合は1回だけ試行します。
func WithMaxRetries(max uint64) Option {
	return func(c *Client) {
		c.retryConfig.MaxRetries = max
	}
}

// WithLogger はリトライ時のログ出力先を設定します。
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New は新しいClientを初期化します。
// timeout が負の場合は DefaultHTTPTimeout、0 の場合はタイムアウトなしになります。
func New(timeout time.Duration, options ...Option) *Client {
	if timeout < 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		retryConfig: retry.DefaultConfig(),
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchBytes は URL からコンテンツをフェッチし、生のバイト配列として返します。
// ヘッダーは net/http の既定のまま送信します。
// 失敗した場合は *types.FetchError を返します。空のデータで代替することはありません。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		var fetchErr error
		body, fetchErr = c.doFetch(ctx, url)
		return fetchErr
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("取得に失敗したため再試行します",
			zap.String("url", url),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := retry.Do(ctx, c.retryConfig, fmt.Sprintf("URL(%s)のフェッチ", url), op, isHTTPRetryableError, notify)
	if err != nil {
		var fetchErr *types.FetchError
		if errors.As(err, &fetchErr) && fetchErr == err {
			return nil, err
		}
		// コンテキストやリトライ上限のラップを FetchError に揃える
		return nil, &types.FetchError{URL: url, StatusCode: statusCodeOf(err), Err: err}
	}
	return body, nil
}

// doFetch は実際の一度のHTTP GETリクエストを実行します。
// ボディはすべての経路で閉じられます。
func (c *Client) doFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)}
	}

	c.logger.Debug("GETリクエストを送信します", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)}
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, &types.FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	bodyBytes, err := HandleLimitedResponse(resp, MaxBodySize)
	if err != nil {
		return nil, &types.FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("レスポンスを受信しました",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(bodyBytes)),
		zap.String("content_type", resp.Header.Get("Content-Type")),
	)
	return bodyBytes, nil
}

// HandleLimitedResponse は、レスポンスボディを最大サイズに制限して読み込みます。
// 制限を超えた場合はエラーを返します。
func HandleLimitedResponse(resp *http.Response, limit int64) ([]byte, error) {
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました", limit)
	}

	// 超過を検出するため1バイト多く読む
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)
	}
	if int64(len(bodyBytes)) > limit {
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました", limit)
	}
	return bodyBytes, nil
}

// checkResponse はHTTPレスポンスのステータスコードを評価します。
// 2xx 以外はすべてエラーです。5xx はリトライ対象、それ以外は NonRetryableHTTPError になります。
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	// エラー本文は診断用に先頭だけ読む
	bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

	if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
		if readErr != nil {
			return fmt.Errorf("HTTPステータスコードエラー (5xx リトライ対象, ボディ読み込み失敗): %d, 原因: %w", resp.StatusCode, readErr)
		}
		return fmt.Errorf("HTTPステータスコードエラー (5xx リトライ対象): %d, 詳細: %s", resp.StatusCode, truncateBody(bodyBytes))
	}

	if readErr != nil {
		return &NonRetryableHTTPError{StatusCode: resp.StatusCode}
	}
	return &NonRetryableHTTPError{StatusCode: resp.StatusCode, Body: bodyBytes}
}

// IsNonRetryableError は与えられたエラーが非リトライ対象のHTTPエラーであるかを判断します。
func IsNonRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var nonRetryable *NonRetryableHTTPError
	return errors.As(err, &nonRetryable)
}

// isHTTPRetryableError はエラーがHTTPリトライ対象かどうかを判定します。
// この関数は retry.ShouldRetryFunc 型のシグネチャを満たします。
func isHTTPRetryableError(err error) bool {
	if err == nil {
		return false
	}
	// 呼び出し元のコンテキスト終了は再試行しても回復しない
	if errors.Is(err, context.Canceled) {
		return false
	}
	if IsNonRetryableError(err) {
		return false
	}
	// 5xx、ネットワークエラー、クライアントタイムアウトは再試行対象
	return true
}

func statusCodeOf(err error) int {
	var fetchErr *types.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyLen {
		return s[:maxErrorBodyLen] + "..."
	}
	return s
}
