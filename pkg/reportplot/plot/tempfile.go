package plot

import (
	"fmt"
	"os"
)

// tempStore allocates uniquely named scratch files for staged series
// data and tracks their paths for bulk removal at session teardown.
type tempStore struct {
	dir   string // empty selects the system temp directory
	paths []string
}

// create opens a fresh scratch file. The path is registered before any
// data is written, so a failed write still leaves the file tracked for
// cleanup.
func (t *tempStore) create() (*os.File, string, error) {
	f, err := os.CreateTemp(t.dir, "reportplot-*.dat")
	if err != nil {
		return nil, "", &Error{
			Message: fmt.Sprintf("unable to open temporary file: %v", err),
			Err:     err,
		}
	}
	t.paths = append(t.paths, f.Name())
	return f, f.Name(), nil
}

// removeAll deletes every tracked file and clears the set. Removal
// failures are ignored, the files are scratch space.
func (t *tempStore) removeAll() {
	for _, p := range t.paths {
		os.Remove(p)
	}
	t.paths = nil
}
