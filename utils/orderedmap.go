package utils

// OrderedMap is a keyed collection that remembers the order in which keys were
// first inserted:
// - a map gives O(1) lookups and enforces key uniqueness
// - a slice fixes iteration order, so anything derived from it is stable across runs
// It is not safe for concurrent use; a single caller owns it for its lifetime.
type OrderedMap[K comparable, V any] struct {
	itemPos map[K]int // position of the item in the list
	items   []V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		itemPos: make(map[K]int),
	}
}

// Put inserts a new entry or overwrites the value of an existing one. An
// overwrite keeps the key's original position.
func (o *OrderedMap[K, V]) Put(key K, value V) {
	if pos, exists := o.itemPos[key]; exists {
		o.items[pos] = value
		return
	}

	o.itemPos[key] = len(o.items)
	o.items = append(o.items, value)
}

func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	if pos, ok := o.itemPos[key]; ok {
		return o.items[pos], true
	}
	var zero V
	return zero, false
}

func (o *OrderedMap[K, V]) Size() int {
	return len(o.items)
}

// Values returns a shallow copy of the value list in insertion order.
func (o *OrderedMap[K, V]) Values() []V {
	values := make([]V, len(o.items))
	copy(values, o.items)
	return values
}

// Keys returns a slice of keys in their insertion order.
func (o *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(o.items))
	for k, pos := range o.itemPos {
		keys[pos] = k
	}
	return keys
}
