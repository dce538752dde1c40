package mongodb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// unreachableURI points at a closed port with aggressive timeouts so the
// first (and only) connection attempt fails fast.
const unreachableURI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

func TestProvider_MemoizesSingleAttempt(t *testing.T) {
	p := NewProvider(unreachableURI)
	ctx := context.Background()

	_, first := p.Client(ctx)
	require.Error(t, first)

	// Subsequent calls return the memoized result without a new attempt.
	_, second := p.Client(ctx)
	require.Same(t, first, second)
}

func TestProvider_ConcurrentFirstCallersConverge(t *testing.T) {
	p := NewProvider(unreachableURI)
	ctx := context.Background()

	const callers = 8
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Client(ctx)
		}(i)
	}
	wg.Wait()

	// Every caller observed the outcome of the one shared attempt.
	for i := 1; i < callers; i++ {
		require.Same(t, errs[0], errs[i])
	}
}
