package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	t.Run("identical names score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("본죽 강남점", "본죽  강남점"))
	})

	t.Run("empty names score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "본죽"))
		assert.Equal(t, 0.0, Similarity("본죽", ""))
	})

	t.Run("closer name scores higher", func(t *testing.T) {
		near := Similarity("본죽", "본죽 강남점")
		far := Similarity("본죽", "맘스터치 종로점")
		assert.Greater(t, near, far)
	})

	t.Run("bounded to [0,1]", func(t *testing.T) {
		s := Similarity("김밥천국 역삼직영점", "완전히 다른 가게 이름")
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	})
}
