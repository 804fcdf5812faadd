package airport

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	t.Run("known Canadian airports are eligible", func(t *testing.T) {
		for _, code := range []string{"YYZ", "YVR", "YUL", "YHZ", "YZS"} {
			assert.True(t, r.IsEligibleDeparture(code), code)
		}
	})

	t.Run("lookup is case and whitespace insensitive", func(t *testing.T) {
		assert.True(t, r.IsEligibleDeparture("yyz"))
		assert.True(t, r.IsEligibleDeparture(" Yvr "))
	})

	t.Run("foreign and unknown codes are not eligible", func(t *testing.T) {
		for _, code := range []string{"JFK", "LAX", "LHR", "", "XXXX"} {
			assert.False(t, r.IsEligibleDeparture(code), code)
		}
	})

	t.Run("list is sorted and duplicate free", func(t *testing.T) {
		codes := r.List()
		require.NotEmpty(t, codes)
		assert.True(t, sort.StringsAreSorted(codes))

		seen := map[string]bool{}
		for _, c := range codes {
			assert.False(t, seen[c], "duplicate %s", c)
			seen[c] = true
		}
		assert.Equal(t, len(codes), r.Len())
	})

	t.Run("list returns a copy", func(t *testing.T) {
		codes := r.List()
		codes[0] = "JFK"
		assert.False(t, r.IsEligibleDeparture("JFK"))
		assert.NotEqual(t, "JFK", r.List()[0])
	})

	t.Run("name lookup", func(t *testing.T) {
		name, ok := r.Name("yyz")
		require.True(t, ok)
		assert.Equal(t, "Toronto Pearson International Airport", name)

		_, ok = r.Name("JFK")
		assert.False(t, ok)
	})
}

func TestNewRegistryDeduplicates(t *testing.T) {
	r := NewRegistry([]Entry{
		{Code: "yyz", Name: "first"},
		{Code: "YYZ", Name: "second"},
		{Code: " ", Name: "blank"},
	})

	assert.Equal(t, []string{"YYZ"}, r.List())
	name, _ := r.Name("YYZ")
	assert.Equal(t, "first", name)
	assert.Equal(t, []Entry{{Code: "YYZ", Name: "first"}}, r.Entries())
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := Default()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.IsEligibleDeparture("YYZ")
				_ = r.List()
			}
		}()
	}
	wg.Wait()
}
