package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankPopularByCount(t *testing.T) {
	available := []Animal{avail("a", "Dog"), avail("b", "Cat"), avail("c", "Dog"), avail("d", "Cat")}
	counts := map[string]int{"b": 3, "c": 3, "d": 10}

	got := RankPopular(available, counts, 10, nil, reverseShuffle)
	assert.Equal(t, []string{"d", "b", "c", "a"}, got)

	got = RankPopular(available, counts, 2, map[string]struct{}{"d": {}}, reverseShuffle)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestRankPopularShufflesWhenNoViews(t *testing.T) {
	available := []Animal{avail("a", "Dog"), avail("b", "Cat"), avail("c", "Dog")}
	got := RankPopular(available, map[string]int{"zzz": 4}, 10, nil, reverseShuffle)
	assert.Equal(t, []string{"c", "b", "a"}, got)
}

func TestRankPopularEdgeCases(t *testing.T) {
	available := []Animal{avail("a", "Dog")}
	assert.Empty(t, RankPopular(available, nil, 0, nil, nil))
	assert.Empty(t, RankPopular(nil, nil, 5, nil, nil))
	assert.Equal(t, []string{"a"}, RankPopular(available, nil, 5, nil, nil))
	assert.Empty(t, RankPopular(available, nil, 5, map[string]struct{}{"a": {}}, reverseShuffle))
}
