package registry

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tbl := New[int]()
	assert.NotNil(t, tbl)
	assert.Equal(t, 0, tbl.Len())
}

func TestDefineAndLookup(t *testing.T) {
	tbl := New[int]()

	require.NoError(t, tbl.Define("one", 1))
	require.NoError(t, tbl.Define("two", 2))

	v, ok := tbl.Lookup("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = tbl.Lookup("two")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	// Undefined name
	v, ok = tbl.Lookup("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestDefineDuplicate(t *testing.T) {
	tbl := New[string]()

	require.NoError(t, tbl.Define("JDIMessage", "first"))
	err := tbl.Define("JDIMessage", "second")
	assert.ErrorIs(t, err, ErrDuplicate)

	// First definition wins
	v, ok := tbl.Lookup("JDIMessage")
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, tbl.Len())
}

func TestDefineEmptyName(t *testing.T) {
	tbl := New[int]()
	assert.ErrorIs(t, tbl.Define("", 1), ErrEmptyName)
	assert.Equal(t, 0, tbl.Len())
}

func TestHas(t *testing.T) {
	tbl := New[int]()
	require.NoError(t, tbl.Define("key", 42))

	assert.True(t, tbl.Has("key"))
	assert.False(t, tbl.Has("nonexistent"))
}

func TestRangeDefinitionOrder(t *testing.T) {
	tbl := New[int]()
	for i, name := range []string{"c", "a", "b"} {
		require.NoError(t, tbl.Define(name, i))
	}

	var names []string
	tbl.Range(func(name string, _ int) bool {
		names = append(names, name)
		return true
	})
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestLookupOrDefineKeepsOrder(t *testing.T) {
	tbl := New[int]()
	require.NoError(t, tbl.Define("a", 1))
	_, _, err := tbl.LookupOrDefine("b", func() int { return 2 })
	require.NoError(t, err)

	var names []string
	tbl.Range(func(name string, _ int) bool {
		names = append(names, name)
		return true
	})
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRange(t *testing.T) {
	tbl := New[int]()
	require.NoError(t, tbl.Define("a", 1))
	require.NoError(t, tbl.Define("b", 2))

	var seen []string
	tbl.Range(func(name string, value int) bool {
		seen = append(seen, fmt.Sprintf("%s=%d", name, value))
		return true
	})

	assert.Equal(t, []string{"a=1", "b=2"}, seen)
}

func TestRangeEarlyStop(t *testing.T) {
	tbl := New[int]()
	for i := range 5 {
		require.NoError(t, tbl.Define(strconv.Itoa(i), i))
	}

	count := 0
	tbl.Range(func(string, int) bool {
		count++
		return count < 2
	})

	assert.Equal(t, 2, count)
}

func TestRangeAllowsDefine(t *testing.T) {
	tbl := New[int]()
	require.NoError(t, tbl.Define("a", 1))

	visited := 0
	tbl.Range(func(name string, _ int) bool {
		visited++
		// Should not deadlock or affect this iteration
		_ = tbl.Define(name+"-copy", 0)
		return true
	})

	assert.Equal(t, 1, visited)
	assert.Equal(t, 2, tbl.Len())
}

func TestLookupOrDefine(t *testing.T) {
	tbl := New[int]()

	calls := 0
	factory := func() int {
		calls++
		return 42
	}

	v, defined, err := tbl.LookupOrDefine("key", factory)
	require.NoError(t, err)
	assert.True(t, defined)
	assert.Equal(t, 42, v)

	v, defined, err = tbl.LookupOrDefine("key", factory)
	require.NoError(t, err)
	assert.False(t, defined)
	assert.Equal(t, 42, v)

	assert.Equal(t, 1, calls)
}

func TestLookupOrDefineEmptyName(t *testing.T) {
	tbl := New[int]()
	_, _, err := tbl.LookupOrDefine("", func() int { return 1 })
	assert.ErrorIs(t, err, ErrEmptyName)
}

// Thread-safety tests

func TestConcurrentDefine(t *testing.T) {
	tbl := New[int]()
	var wg sync.WaitGroup
	n := 1000

	for i := range n {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			assert.NoError(t, tbl.Define(strconv.Itoa(val), val*2))
		}(i)
	}

	wg.Wait()

	assert.Equal(t, n, tbl.Len())
}

func TestConcurrentDefineSameName(t *testing.T) {
	tbl := New[int]()
	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := range 100 {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			if tbl.Define("JDIMessage", val) == nil {
				successes.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, 1, tbl.Len())
}

func TestConcurrentLookupOrDefine(t *testing.T) {
	tbl := New[int]()
	var wg sync.WaitGroup
	var callCount atomic.Int32

	factory := func() int {
		callCount.Add(1)
		return 42
	}

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := tbl.LookupOrDefine("key", factory)
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}

	wg.Wait()

	// Factory should only be called once
	assert.Equal(t, int32(1), callCount.Load())
	assert.Equal(t, 1, tbl.Len())
}

func TestConstructorTable(t *testing.T) {
	type ctor func() fmt.Stringer
	tbl := New[ctor]()

	require.NoError(t, tbl.Define("stringer", func() fmt.Stringer {
		return stringValue("hello!")
	}))

	c, ok := tbl.Lookup("stringer")
	require.True(t, ok)
	assert.Equal(t, "hello!", c().String())
}

type stringValue string

func (s stringValue) String() string { return string(s) }

func BenchmarkLookup(b *testing.B) {
	tbl := New[int]()
	for i := range 100 {
		_ = tbl.Define(strconv.Itoa(i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Lookup("50")
	}
}

func BenchmarkLookupOrDefine_Existing(b *testing.B) {
	tbl := New[int]()
	_ = tbl.Define("key", 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = tbl.LookupOrDefine("key", func() int { return 0 })
	}
}
