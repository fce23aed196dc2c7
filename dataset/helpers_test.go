package dataset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// captureWarnings routes errors.Warn into a slice for the duration of the test.
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var (
		mu       sync.Mutex
		warnings []error
	)
	errors.SetZerologWarnFunc(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	})
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), warnings...)
	}
}
