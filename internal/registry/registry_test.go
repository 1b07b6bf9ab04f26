package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Admit_Rejects_Taken_Name(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	first, err := reg.Admit("conn-1", "Alice")
	req.NoError(err)
	req.Equal("Alice", first.Name)

	_, err = reg.Admit("conn-2", "Alice")
	req.ErrorIs(err, ErrNameTaken)

	names := snapshotNames(reg)
	req.Equal([]string{"Alice"}, names)
}

func Test_Admit_Rejects_Second_Join_From_Same_Connection(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	_, err := reg.Admit("conn-1", "Alice")
	req.NoError(err)

	_, err = reg.Admit("conn-1", "Bob")
	req.ErrorIs(err, ErrConnectionJoined)
}

func Test_Concurrent_Admit_Same_Name_Single_Winner(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	const attempts = 64

	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := reg.Admit(fmt.Sprintf("conn-%d", i), "Alice"); err == nil {
				successes.Add(1)
			}
		}(i)
	}
	wg.Wait()

	req.EqualValues(1, successes.Load())
	req.Len(reg.Snapshot(), 1)
}

func Test_Remove_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	_, err := reg.Admit("conn-1", "Alice")
	req.NoError(err)

	removed, ok := reg.Remove("conn-1")
	req.True(ok)
	req.Equal("Alice", removed.Name)

	_, ok = reg.Remove("conn-1")
	req.False(ok)

	_, ok = reg.Remove("never-joined")
	req.False(ok)
}

func Test_Removed_Name_Can_Be_Claimed_Again(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	_, err := reg.Admit("conn-1", "Alice")
	req.NoError(err)

	_, ok := reg.Remove("conn-1")
	req.True(ok)

	second, err := reg.Admit("conn-2", "Alice")
	req.NoError(err)
	req.Equal("conn-2", second.ConnectionID)
}

func Test_Snapshot_Preserves_Join_Order(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	for i, name := range []string{"Clara", "Alice", "Bob"} {
		_, err := reg.Admit(fmt.Sprintf("conn-%d", i), name)
		req.NoError(err)
	}

	req.Equal([]string{"Clara", "Alice", "Bob"}, snapshotNames(reg))

	_, ok := reg.Remove("conn-1")
	req.True(ok)

	req.Equal([]string{"Clara", "Bob"}, snapshotNames(reg))
}

func Test_Lookup_By_Connection(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	_, err := reg.Admit("conn-1", "Alice")
	req.NoError(err)

	participant, ok := reg.Lookup("conn-1")
	req.True(ok)
	req.Equal("Alice", participant.Name)

	_, ok = reg.Lookup("conn-2")
	req.False(ok)
}

func snapshotNames(reg *Registry) []string {
	participants := reg.Snapshot()
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, p.Name)
	}
	return names
}
