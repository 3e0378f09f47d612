package wordlist

import (
	"maps"
	"slices"
)

// WordSet は重複のない単語の集合です。構築時の順序は保証されません。
// 要素はすべて前後の空白が除去された空でない文字列です。
type WordSet map[string]struct{}

// NewWordSet は words から WordSet を生成します。空文字列は無視されます。
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add は w を集合に追加し、追加された場合に true を返します。
// 空文字列は追加されません。
func (s WordSet) Add(w string) bool {
	if w == "" {
		return false
	}
	if _, ok := s[w]; ok {
		return false
	}
	s[w] = struct{}{}
	return true
}

func (s WordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

func (s WordSet) Len() int {
	return len(s)
}

// Equal は順序に依存せず、二つの集合の要素が一致するかを返します。
func (s WordSet) Equal(other WordSet) bool {
	if len(s) != len(other) {
		return false
	}
	for w := range s {
		if !other.Contains(w) {
			return false
		}
	}
	return true
}

// WordList は WordSet をソートした結果です。
type WordList []string

// Sort は集合をコードポイント順 (UTF-8 のバイト順と同じ) に並べます。
// そのため、č・š・ž などで始まる単語は ASCII の単語より後ろに来ます。
func Sort(s WordSet) WordList {
	list := slices.AppendSeq(make(WordList, 0, len(s)), maps.Keys(s))
	slices.Sort(list)
	return list
}

func (l WordList) IsSorted() bool {
	return slices.IsSorted(l)
}

// Set は l と同じ要素を持つ WordSet を返します。
func (l WordList) Set() WordSet {
	return NewWordSet(l...)
}
