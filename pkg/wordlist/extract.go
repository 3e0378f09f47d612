package wordlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/shouni/go-top-words/pkg/types"
)

// DataTableIndex は、取得元ページで単語が並ぶテーブルの位置 (0始まり) です。
// 1番目のテーブルはページの見出し部分に使われています。
const DataTableIndex = 1

// Cell は <td> 要素を表します。
// Text はセルが単一のテキストを直接持つ場合のみ非nilです。
type Cell struct {
	HasAttributes bool
	Text          *string
}

// Qualifies は属性を持たないプレーンなセルかどうかを返します。
func (c Cell) Qualifies() bool {
	return !c.HasAttributes
}

// NewCell は *html.Node から Cell を生成します。
func NewCell(n *html.Node) Cell {
	return Cell{
		HasAttributes: len(n.Attr) > 0,
		Text:          CellText(n),
	}
}

// CellText はセルの直接のテキストを返します。
// 子がテキストノードかコメント一つだけならその内容、要素一つだけならその要素を辿ります。
// 子がない場合や複数ある場合は nil です。
func CellText(n *html.Node) *string {
	for n != nil {
		child := n.FirstChild
		if child == nil || child.NextSibling != nil {
			return nil
		}
		switch child.Type {
		case html.TextNode, html.CommentNode:
			text := child.Data
			return &text
		case html.ElementNode:
			n = child
		default:
			return nil
		}
	}
	return nil
}

// Cells は文書中の tableIndex 番目の <table> 以下にある全 <td> を文書順に返します。
// 入れ子のテーブルも数に含めます。
func Cells(doc *goquery.Document, tableIndex int) ([]Cell, error) {
	tables := doc.Find("table")
	if tableIndex < 0 || tableIndex >= tables.Length() {
		return nil, &types.ParseError{
			Kind: types.ParseKindTableNotFound,
			Err:  fmt.Errorf("%d 番目のテーブルが必要ですが、テーブルは %d 個しかありません", tableIndex+1, tables.Length()),
		}
	}

	tds := tables.Eq(tableIndex).Find("td")
	cells := make([]Cell, 0, tds.Length())
	tds.Each(func(_ int, s *goquery.Selection) {
		cells = append(cells, NewCell(s.Get(0)))
	})
	return cells, nil
}

// Words は条件を満たすセルのテキストを集合にします。
// テキストを持たないセルと空白だけのセルはスキップします。
func Words(cells []Cell) WordSet {
	set := make(WordSet, len(cells))
	for _, c := range cells {
		if !c.Qualifies() || c.Text == nil {
			continue
		}
		set.Add(strings.TrimSpace(*c.Text))
	}
	return set
}

// ExtractDocument は解析済みの文書から WordSet を抽出します。
func ExtractDocument(doc *goquery.Document, tableIndex int) (WordSet, error) {
	cells, err := Cells(doc, tableIndex)
	if err != nil {
		return nil, err
	}
	return Words(cells), nil
}

// Extract は UTF-8 の HTML を解析し、WordSet を抽出します。
// 条件を満たすセルがない場合は空の集合を返します。
func Extract(r io.Reader, tableIndex int) (WordSet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &types.ParseError{Kind: types.ParseKindInvalidHTML, Err: err}
	}
	return ExtractDocument(doc, tableIndex)
}
