// Package decode は、取得したバイト列を固定のレガシー文字コードで解釈し直します。
// レスポンスヘッダーの charset は使用しません。
package decode

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultLabel は取得元ページの文字コードです。
const DefaultLabel = "iso-8859-2"

// Decoder は、単一の文字コードでバイト列をUTF-8文字列に変換します。
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// ISO88592 は ISO-8859-2 固定の Decoder を返します。
func ISO88592() *Decoder {
	return &Decoder{name: DefaultLabel, enc: charmap.ISO8859_2}
}

// New は WHATWG のラベル (例: "iso-8859-2", "latin2") から Decoder を生成します。
func New(label string) (*Decoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("文字コードのラベルが空です")
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("未対応の文字コードです (%s): %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Name は正規化された文字コード名を返します。
func (d *Decoder) Name() string {
	return d.name
}

// Decode は raw を文字列に変換します。
// 不正なバイト列は置換文字 (U+FFFD) に置き換えられ、エラーにはなりません。
func (d *Decoder) Decode(raw []byte) (string, error) {
	out, _, err := transform.Bytes(d.enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("%s からの変換に失敗しました: %w", d.name, err)
	}
	return string(out), nil
}

// NewReader は r を読みながら変換する io.Reader を返します。
func (d *Decoder) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, d.enc.NewDecoder())
}
