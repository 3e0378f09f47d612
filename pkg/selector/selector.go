package selector

import (
	"math/rand/v2"

	"github.com/shouni/go-top-words/pkg/types"
	"github.com/shouni/go-top-words/pkg/wordlist"
)

// Selector は WordList から一様ランダムに単語を一つ選びます。
// 暗号用途ではない一般的な乱数源を使用します。
type Selector struct {
	rng *rand.Rand
}

// New は実行ごとに異なる乱数列を使う Selector を生成します。
func New() *Selector {
	return &Selector{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewWithSeed は再現可能な乱数列を使う Selector を生成します。
func NewWithSeed(seed uint64) *Selector {
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Pick は list の要素を一つ返します。list が空の場合は *types.EmptyResultError を返します。
func (s *Selector) Pick(list wordlist.WordList) (string, error) {
	if len(list) == 0 {
		return "", &types.EmptyResultError{Stage: "selector"}
	}
	return list[s.rng.IntN(len(list))], nil
}
