package reportplot

import "errors"

// ErrScriptNotFound indicates the report script does not exist.
var ErrScriptNotFound = errors.New("report script not found")
