package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxDeliversInOrder(t *testing.T) {
	m := NewMailbox[int]()

	// nobody is reading yet, Put must still return immediately
	for i := range 1000 {
		m.Put(i)
	}
	m.Close()

	var got []int
	for v := range m.C() {
		got = append(got, v)
	}

	require.Len(t, got, 1000)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestMailboxPutAfterCloseIsDropped(t *testing.T) {
	m := NewMailbox[string]()
	m.Put("a")
	m.Close()
	m.Put("b")

	var got []string
	for v := range m.C() {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a"}, got)
}

func TestMailboxConcurrentProducers(t *testing.T) {
	m := NewMailbox[int]()

	var wg sync.WaitGroup
	for p := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 250 {
				m.Put(p*1000 + i)
			}
		}()
	}

	done := make(chan int)
	go func() {
		count := 0
		for range m.C() {
			count++
		}
		done <- count
	}()

	wg.Wait()
	m.Close()

	select {
	case count := <-done:
		assert.Equal(t, 1000, count)
	case <-time.After(5 * time.Second):
		t.Fatal("mailbox did not drain")
	}
}

func TestMailboxCloseEmpty(t *testing.T) {
	m := NewMailbox[int]()
	m.Close()

	select {
	case _, ok := <-m.C():
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}
}
