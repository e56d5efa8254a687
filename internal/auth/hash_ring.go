package auth

import (
	"hash/crc32"
	"sort"
	"strconv"
	"sync"
)

// HashRing 一致性哈希环，按 token 选择负责的缓存节点
type HashRing struct {
	mu       sync.RWMutex
	replicas int
	keys     []uint32 // 已排序的虚拟节点哈希
	nodes    map[uint32]string
	known    map[string]struct{}
}

// NewHashRing 创建哈希环，nodes 为空时生成一个默认节点
func NewHashRing(nodes []string, replicas int) *HashRing {
	if replicas <= 0 {
		replicas = 50
	}
	if len(nodes) == 0 {
		nodes = []string{"auth-node-default"}
	}
	r := &HashRing{
		replicas: replicas,
		nodes:    make(map[uint32]string),
		known:    make(map[string]struct{}),
	}
	r.Add(nodes...)
	return r
}

// Add 批量添加节点，重复节点忽略
func (r *HashRing) Add(nodes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range nodes {
		if _, ok := r.known[node]; ok {
			continue
		}
		r.known[node] = struct{}{}
		for i := 0; i < r.replicas; i++ {
			h := crc32.ChecksumIEEE([]byte(node + "#" + strconv.Itoa(i)))
			r.keys = append(r.keys, h)
			r.nodes[h] = node
		}
	}
	sort.Slice(r.keys, func(i, j int) bool { return r.keys[i] < r.keys[j] })
}

// Node 返回 key 落到的节点
func (r *HashRing) Node(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.keys) == 0 {
		return ""
	}
	h := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(r.keys), func(i int) bool { return r.keys[i] >= h })
	if idx == len(r.keys) {
		idx = 0
	}
	return r.nodes[r.keys[idx]]
}
