package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-top-words/pkg/types"
	"github.com/shouni/go-top-words/pkg/wordlist"
)

func TestPick_EmptyList(t *testing.T) {
	for _, list := range []wordlist.WordList{nil, {}} {
		word, err := New().Pick(list)

		require.Error(t, err)
		assert.Empty(t, word)

		var emptyErr *types.EmptyResultError
		assert.ErrorAs(t, err, &emptyErr)
	}
}

func TestPick_ReturnsMember(t *testing.T) {
	list := wordlist.WordList{"biti", "hiša"}
	s := New()

	for range 100 {
		word, err := s.Pick(list)
		require.NoError(t, err)
		assert.Contains(t, list, word)
	}
}

func TestPick_EveryMemberReachable(t *testing.T) {
	list := wordlist.WordList{"ali", "biti", "čas", "in", "je", "šola", "žaba"}
	s := NewWithSeed(2000)

	seen := make(map[string]int, len(list))
	for range 5000 {
		word, err := s.Pick(list)
		require.NoError(t, err)
		seen[word]++
	}

	assert.Len(t, seen, len(list), "すべての単語が選ばれる可能性があるはずです")
	for _, w := range list {
		// 期待値は約714回。大きく偏っていないことだけを確認する
		assert.Greater(t, seen[w], 400, "%s の出現回数が少なすぎます", w)
	}
}

func TestNewWithSeed_IsDeterministic(t *testing.T) {
	list := wordlist.WordList{"a", "b", "c", "d", "e", "f"}
	a, b := NewWithSeed(42), NewWithSeed(42)

	for range 20 {
		wa, err := a.Pick(list)
		require.NoError(t, err)
		wb, err := b.Pick(list)
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
	}
}
