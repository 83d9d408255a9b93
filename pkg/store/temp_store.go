package store

import (
	"path/filepath"

	"src.lined.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file in namespace "test".
// The Store and the file are removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	return MustTempStoreNS(c, "test")
}

// MustTempStoreNS is like MustTempStore, but uses the given namespace.
func MustTempStoreNS(c testutil.Cleanuper, ns string) DBStore {
	dir := testutil.TempDir(c)
	st, err := NewStore(filepath.Join(dir, "db"), ns)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
