package wordlist_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-top-words/pkg/types"
	"github.com/shouni/go-top-words/pkg/wordlist"
)

// twoTables は見出し用テーブルとデータ用テーブルを持つ文書を組み立てます。
func twoTables(dataCells string) string {
	return fmt.Sprintf(`<html><head><title>Top 2000</title></head><body>
<table><tr><td>glava</td><td>naslov</td></tr></table>
<table><tr>%s</tr></table>
</body></html>`, dataCells)
}

func mustDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestExtract_Scenario(t *testing.T) {
	src := twoTables(`<td>hiša</td><td class="x">ignored</td><td> biti </td><td>hiša</td>`)

	set, err := wordlist.Extract(strings.NewReader(src), wordlist.DataTableIndex)
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Equal(wordlist.NewWordSet("hiša", "biti")))
	assert.False(t, set.Contains("ignored"), "属性を持つセルは除外されるべきです")
	assert.False(t, set.Contains("glava"), "1番目のテーブルは対象外です")

	assert.Equal(t, wordlist.WordList{"biti", "hiša"}, wordlist.Sort(set))
}

func TestExtract_CellRules(t *testing.T) {
	tests := []struct {
		name     string
		cells    string
		expected []string
	}{
		{
			name:     "styled_cells_are_skipped",
			cells:    `<td align="right">1</td><td>in</td><td bgcolor="#eee">2</td><td>je</td>`,
			expected: []string{"in", "je"},
		},
		{
			name:     "single_element_child_is_followed",
			cells:    `<td><b>biti</b></td><td><a href="#"><i>da</i></a></td>`,
			expected: []string{"biti", "da"},
		},
		{
			name:     "empty_cell_is_skipped",
			cells:    `<td></td><td>na</td>`,
			expected: []string{"na"},
		},
		{
			name:     "comment_only_cell_yields_comment_text",
			cells:    `<td><!-- skrito --></td><td>in</td>`,
			expected: []string{"in", "skrito"},
		},
		{
			name:     "mixed_children_are_skipped",
			cells:    `<td>se <b>ne</b></td><td>za</td>`,
			expected: []string{"za"},
		},
		{
			name:     "whitespace_only_cell_is_skipped",
			cells:    "<td>   </td><td> </td><td>po</td>",
			expected: []string{"po"},
		},
		{
			name:     "surrounding_whitespace_and_nbsp_are_trimmed",
			cells:    "<td>\n\tker\n</td><td>&nbsp;pa&nbsp;</td>",
			expected: []string{"ker", "pa"},
		},
		{
			name:     "no_qualifying_cells_yields_empty_set",
			cells:    `<td class="h">beseda</td>`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := wordlist.Extract(strings.NewReader(twoTables(tt.cells)), wordlist.DataTableIndex)
			require.NoError(t, err)
			assert.True(t, set.Equal(wordlist.NewWordSet(tt.expected...)), "got %v", wordlist.Sort(set))
		})
	}
}

func TestExtract_TableNotFound(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no_tables", `<html><body><p>ni tabel</p></body></html>`},
		{"one_table", `<html><body><table><tr><td>ena</td></tr></table></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := wordlist.Extract(strings.NewReader(tt.html), wordlist.DataTableIndex)
			require.Error(t, err)
			assert.Nil(t, set)

			var parseErr *types.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, types.ParseKindTableNotFound, parseErr.Kind)
		})
	}
}

func TestExtract_NestedTablesCountInDocumentOrder(t *testing.T) {
	// 入れ子のテーブルは文書順で2番目のテーブルになる
	src := `<html><body>
<table><tr><td><table><tr><td>notranja</td></tr></table></td></tr></table>
<table><tr><td>zunanja</td></tr></table>
</body></html>`

	set, err := wordlist.Extract(strings.NewReader(src), wordlist.DataTableIndex)
	require.NoError(t, err)
	assert.True(t, set.Equal(wordlist.NewWordSet("notranja")))
}

func TestCells(t *testing.T) {
	doc := mustDoc(t, twoTables(`<td>a</td><td class="x">b</td><td></td><td><b>c</b> d</td><td><!--e--></td>`))

	cells, err := wordlist.Cells(doc, wordlist.DataTableIndex)
	require.NoError(t, err)
	require.Len(t, cells, 5)

	assert.False(t, cells[0].HasAttributes)
	require.NotNil(t, cells[0].Text)
	assert.Equal(t, "a", *cells[0].Text)

	assert.True(t, cells[1].HasAttributes)
	assert.False(t, cells[1].Qualifies())

	assert.Nil(t, cells[2].Text)
	assert.Nil(t, cells[3].Text)
	require.NotNil(t, cells[4].Text)
	assert.Equal(t, "e", *cells[4].Text)

	_, err = wordlist.Cells(doc, -1)
	assert.Error(t, err)
}

func TestExtract_Properties(t *testing.T) {
	src := twoTables(`<td>in</td><td> je </td><td>in</td><td class="r">9</td><td>biti</td><td><i>je</i></td><td>šola</td><td></td>`)
	doc := mustDoc(t, src)

	cells, err := wordlist.Cells(doc, wordlist.DataTableIndex)
	require.NoError(t, err)

	var qualifying []string
	for _, c := range cells {
		if c.Qualifies() && c.Text != nil {
			qualifying = append(qualifying, *c.Text)
		}
	}

	set, err := wordlist.ExtractDocument(doc, wordlist.DataTableIndex)
	require.NoError(t, err)

	t.Run("size_bounded_by_qualifying_cells", func(t *testing.T) {
		n := 0
		for _, c := range cells {
			if c.Qualifies() {
				n++
			}
		}
		assert.LessOrEqual(t, set.Len(), n)
	})

	t.Run("members_are_trimmed_cell_texts", func(t *testing.T) {
		for w := range set {
			assert.NotEmpty(t, w)
			assert.Equal(t, strings.TrimSpace(w), w)

			found := false
			for _, text := range qualifying {
				if strings.Contains(text, w) {
					found = true
					break
				}
			}
			assert.True(t, found, "%q はセルのテキストに含まれていません", w)
		}
	})

	t.Run("extraction_is_idempotent", func(t *testing.T) {
		again, err := wordlist.Extract(strings.NewReader(src), wordlist.DataTableIndex)
		require.NoError(t, err)
		assert.True(t, set.Equal(again))
	})

	t.Run("sort_law", func(t *testing.T) {
		list := wordlist.Sort(set)
		assert.True(t, list.IsSorted())
		assert.True(t, list.Set().Equal(set))
		assert.Equal(t, list, wordlist.Sort(list.Set()), "再ソートは何も変えないはずです")
		assert.Equal(t, wordlist.WordList{"biti", "in", "je", "šola"}, list)
	})
}
