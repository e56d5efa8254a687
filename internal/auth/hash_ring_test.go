package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRingEstable(t *testing.T) {
	ring := NewHashRing([]string{"a", "b", "c"}, 50)

	// 同一个 key 总是落在同一个节点
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("token-%d", i)
		assert.Equal(t, ring.Node(key), ring.Node(key))
	}
}

func TestHashRingReparte(t *testing.T) {
	ring := NewHashRing([]string{"a", "b", "c"}, 50)

	vistos := make(map[string]int)
	for i := 0; i < 300; i++ {
		vistos[ring.Node(fmt.Sprintf("token-%d", i))]++
	}
	// 三个节点都应该接到一部分 key
	require.Len(t, vistos, 3)
	for node, n := range vistos {
		assert.Greater(t, n, 0, node)
	}
}

func TestHashRingSinNodos(t *testing.T) {
	ring := NewHashRing(nil, 0)
	assert.NotEmpty(t, ring.Node("cualquiera"))
}
