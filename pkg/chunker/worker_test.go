package chunker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadInOrderPreservesOrder(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for i := 0; i < 100; i++ {
		p := fmt.Sprintf("f%03d.txt", i)
		writeFile(t, root, p, []byte(p))
		paths = append(paths, p)
	}
	paths = append(paths, "missing.txt")

	loader, err := NewLoader(root, "utf-8")
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			var got []string
			var failed []string
			err := loadInOrder(paths, loader, workers, zap.NewNop(), func(res loadResult) error {
				if res.err != nil {
					failed = append(failed, res.path)
					return nil
				}
				assert.Equal(t, res.path, res.rec.Content)
				got = append(got, res.rec.Path)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, paths[:100], got)
			assert.Equal(t, []string{"missing.txt"}, failed)
		})
	}
}

func TestLoadInOrderStopsOnCallbackError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", []byte("a"))
	writeFile(t, root, "b.txt", []byte("b"))

	loader, err := NewLoader(root, "utf-8")
	require.NoError(t, err)

	stop := errors.New("stop")
	calls := 0
	err = loadInOrder([]string{"a.txt", "b.txt"}, loader, 4, zap.NewNop(), func(loadResult) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
