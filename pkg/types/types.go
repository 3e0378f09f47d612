package types

import (
	"fmt"
)

// Result は、1回の実行で得られた単語リストと選択結果を保持します。
// これは、パイプラインの出力、CLIの入力として利用されます。
type Result struct {
	URL      string   // 取得元のURL
	Words    []string // ソート済みの単語リスト
	Selected string   // ランダムに選ばれた単語
}

// ----------------------------------------------------------------------
// ステージ境界のエラー型
// ----------------------------------------------------------------------

// FetchError は、ページ取得（ネットワーク、タイムアウト、非2xxステータス）の失敗を示します。
type FetchError struct {
	URL        string
	StatusCode int // ステータスを受信できなかった場合は 0
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ページの取得に失敗しました (URL: %s, ステータスコード: %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ページの取得に失敗しました (URL: %s): %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError は、HTMLの構造が想定と異なる場合（対象テーブルが存在しない等）のエラーです。
type ParseError struct {
	Kind string
	Err  error
}

// ParseError の Kind
const (
	ParseKindInvalidHTML   = "invalid html"
	ParseKindTableNotFound = "table not found"
)

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("HTML解析エラー (%s)", e.Kind)
	}
	return fmt.Sprintf("HTML解析エラー (%s): %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyResultError は、条件を満たすセルが一つも見つからず単語リストが空の場合のエラーです。
type EmptyResultError struct {
	Stage string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("単語リストが空です (%s): 条件を満たすテーブルセルが見つかりませんでした", e.Stage)
}
