// Package zbuffer keeps sprites in draw order.
package zbuffer

import "sort"

// Buffer buckets sprites by draw-order key. Lower keys are drawn first;
// sprites sharing a key keep insertion order.
type Buffer[T comparable] struct {
	buckets map[float64][]T
	keyOf   map[T]float64
	keys    []float64
	dirty   bool
}

func New[T comparable]() *Buffer[T] {
	return &Buffer[T]{
		buckets: make(map[float64][]T),
		keyOf:   make(map[T]float64),
	}
}

// Len returns the number of sprites in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.keyOf)
}

// Add inserts sprite at key, moving it if it is already present.
func (b *Buffer[T]) Add(key float64, sprite T) {
	if old, ok := b.keyOf[sprite]; ok {
		b.UpdateDrawOrder(old, sprite, key)
		return
	}
	b.insert(key, sprite)
}

// UpdateDrawOrder moves sprite from oldKey to newKey. If sprite is not filed
// under oldKey it is taken from wherever it is.
func (b *Buffer[T]) UpdateDrawOrder(oldKey float64, sprite T, newKey float64) {
	if cur, ok := b.keyOf[sprite]; ok {
		if cur != oldKey {
			oldKey = cur
		}
		if oldKey == newKey {
			return
		}
		b.take(oldKey, sprite)
	}
	b.insert(newKey, sprite)
}

// Remove drops sprite from the buffer.
func (b *Buffer[T]) Remove(sprite T) {
	if key, ok := b.keyOf[sprite]; ok {
		b.take(key, sprite)
	}
}

// Key returns the key sprite is filed under.
func (b *Buffer[T]) Key(sprite T) (float64, bool) {
	k, ok := b.keyOf[sprite]
	return k, ok
}

// Each calls fn for every sprite in draw order.
func (b *Buffer[T]) Each(fn func(key float64, sprite T)) {
	if b.dirty {
		b.keys = b.keys[:0]
		for k := range b.buckets {
			b.keys = append(b.keys, k)
		}
		sort.Float64s(b.keys)
		b.dirty = false
	}
	for _, k := range b.keys {
		for _, s := range b.buckets[k] {
			fn(k, s)
		}
	}
}

// Ordered returns the sprites in draw order.
func (b *Buffer[T]) Ordered() []T {
	out := make([]T, 0, len(b.keyOf))
	b.Each(func(_ float64, s T) { out = append(out, s) })
	return out
}

func (b *Buffer[T]) insert(key float64, sprite T) {
	if _, ok := b.buckets[key]; !ok {
		b.dirty = true
	}
	b.buckets[key] = append(b.buckets[key], sprite)
	b.keyOf[sprite] = key
}

func (b *Buffer[T]) take(key float64, sprite T) {
	bucket := b.buckets[key]
	for i, s := range bucket {
		if s == sprite {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(b.buckets, key)
		b.dirty = true
	} else {
		b.buckets[key] = bucket
	}
	delete(b.keyOf, sprite)
}
