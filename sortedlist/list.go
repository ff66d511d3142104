// Package sortedlist is a sorted singly linked list of distinct ints.
//
// List is not safe for concurrent use. Member needs the caller to hold
// shared access, Insert and Delete need exclusive access.
package sortedlist

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsorted = errors.New("list keys are not strictly increasing")

type node struct {
	key  int
	next *node
}

// List keeps its keys in strictly increasing order without duplicates.
// The zero value is an empty list.
type List struct {
	head *node
}

// New returns a list holding keys. Duplicates are dropped.
func New(keys ...int) *List {
	l := &List{}
	for _, k := range keys {
		l.Insert(k)
	}
	return l
}

// find returns the link that either points at key or at the place key
// would be spliced in.
func (l *List) find(key int) **node {
	link := &l.head
	for *link != nil && (*link).key < key {
		link = &(*link).next
	}
	return link
}

// Member reports whether key is in the list.
func (l *List) Member(key int) bool {
	n := l.head
	for n != nil && n.key < key {
		n = n.next
	}
	return n != nil && n.key == key
}

// Insert adds key and reports true, or reports false if key is already present.
func (l *List) Insert(key int) bool {
	link := l.find(key)
	if *link != nil && (*link).key == key {
		return false
	}
	*link = &node{key: key, next: *link}
	return true
}

// Delete removes key and reports true, or reports false if key is absent.
func (l *List) Delete(key int) bool {
	link := l.find(key)
	if *link == nil || (*link).key != key {
		return false
	}
	removed := *link
	*link = removed.next
	removed.next = nil
	return true
}

// Len walks the list and returns the number of keys.
func (l *List) Len() int {
	n := 0
	for cur := l.head; cur != nil; cur = cur.next {
		n++
	}
	return n
}

// Keys returns the keys in ascending order.
func (l *List) Keys() []int {
	var keys []int
	for cur := l.head; cur != nil; cur = cur.next {
		keys = append(keys, cur.key)
	}
	return keys
}

// Validate checks that keys are strictly increasing.
func (l *List) Validate() error {
	pos := 0
	for cur := l.head; cur != nil && cur.next != nil; cur = cur.next {
		if cur.key >= cur.next.key {
			return fmt.Errorf("%w: %d followed by %d at position %d", ErrUnsorted, cur.key, cur.next.key, pos)
		}
		pos++
	}
	return nil
}

// Clear drops every node.
func (l *List) Clear() {
	// разрываем цепочку, чтобы висящие ссылки на узлы не держали хвост
	for cur := l.head; cur != nil; {
		next := cur.next
		cur.next = nil
		cur = next
	}
	l.head = nil
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for cur := l.head; cur != nil; cur = cur.next {
		if cur != l.head {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", cur.key)
	}
	b.WriteByte(']')
	return b.String()
}
