package metrics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleCounter(t *testing.T) {
	tests := []struct {
		text string
		want Count
	}{
		{"", Count{}},
		{"abcd", Count{Bytes: 4, Tokens: 1, Lines: 1}},
		{"abcd\nefgh\n", Count{Bytes: 10, Tokens: 2, Lines: 2}},
		{"a\nb", Count{Bytes: 3, Tokens: 0, Lines: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SimpleCounter{}.Count([]byte(tt.text)), "%q", tt.text)
	}
}

func TestNewCounter(t *testing.T) {
	c, err := NewCounter("")
	require.NoError(t, err)
	assert.IsType(t, SimpleCounter{}, c)

	c, err = NewCounter("simple")
	require.NoError(t, err)
	assert.IsType(t, SimpleCounter{}, c)

	_, err = NewCounter("no-such-model")
	assert.Error(t, err)
}

func TestCountAdd(t *testing.T) {
	c := Count{Bytes: 1, Tokens: 2, Lines: 3}
	c.Add(Count{Bytes: 10, Tokens: 20, Lines: 30})
	assert.Equal(t, Count{Bytes: 11, Tokens: 22, Lines: 33}, c)
}

func TestCollector(t *testing.T) {
	assert := assert.New(t)

	c := NewCollector(SimpleCounter{}, 3)
	for i := range 20 {
		require.NoError(t, c.Add(fmt.Sprintf("f%02d.txt", i%5), []byte("12345678\n")))
	}

	items := c.Items()
	require.Len(t, items, 5)
	assert.Equal("f00.txt", items[0].Path)
	assert.Equal(Count{Bytes: 36, Tokens: 8, Lines: 4}, items[0].Count)

	assert.Equal(Count{Bytes: 180, Tokens: 40, Lines: 20}, c.Total())

	// Wait is safe to repeat
	c.Wait()
}

func TestCollectorZeroWorkers(t *testing.T) {
	c := NewCollector(SimpleCounter{}, 0)
	require.NoError(t, c.Add("a", []byte("abcd")))
	assert.Equal(t, Count{Bytes: 4, Tokens: 1, Lines: 1}, c.Total())
}

func TestCollectorAddAfterWait(t *testing.T) {
	c := NewCollector(SimpleCounter{}, 2)
	require.NoError(t, c.Add("a", []byte("abcd")))
	c.Wait()

	err := c.Add("b", []byte("efgh"))
	assert.ErrorIs(t, err, ErrCollectorClosed)
	assert.Equal(t, []Item{{Path: "a", Count: Count{Bytes: 4, Tokens: 1, Lines: 1}}}, c.Items())
}

func TestCollectorConcurrentAdd(t *testing.T) {
	c := NewCollector(SimpleCounter{}, 2)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				_ = c.Add(fmt.Sprintf("g%d", i), []byte("abcd"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Count{Bytes: 320, Tokens: 80, Lines: 80}, c.Total())
}
