package cache

// LRUList maintains cache eviction order
type LRUList struct {
	head  *LRUNode
	tail  *LRUNode
	nodes map[string]*LRUNode
	size  int
}

// LRUNode represents a node in the LRU list
type LRUNode struct {
	key        string
	prev, next *LRUNode
}

// NewLRUList creates a new LRU list
func NewLRUList() *LRUList {
	head := &LRUNode{}
	tail := &LRUNode{}
	head.next = tail
	tail.prev = head

	return &LRUList{
		head:  head,
		tail:  tail,
		nodes: make(map[string]*LRUNode),
	}
}

// Touch inserts key at the front, or moves it there if already present
func (l *LRUList) Touch(key string) {
	if node, exists := l.nodes[key]; exists {
		l.unlink(node)
		l.pushFront(node)
		return
	}
	node := &LRUNode{key: key}
	l.nodes[key] = node
	l.pushFront(node)
	l.size++
}

// Remove removes a key from the LRU list
func (l *LRUList) Remove(key string) {
	if node, exists := l.nodes[key]; exists {
		l.unlink(node)
		delete(l.nodes, key)
		l.size--
	}
}

// RemoveOldest removes and returns the least recently used key
func (l *LRUList) RemoveOldest() (string, bool) {
	if l.size == 0 {
		return "", false
	}
	oldest := l.tail.prev
	l.unlink(oldest)
	delete(l.nodes, oldest.key)
	l.size--
	return oldest.key, true
}

// Size returns the number of tracked keys
func (l *LRUList) Size() int {
	return l.size
}

func (l *LRUList) pushFront(node *LRUNode) {
	node.next = l.head.next
	node.prev = l.head
	l.head.next.prev = node
	l.head.next = node
}

func (l *LRUList) unlink(node *LRUNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}
