// Package paths resolves the on-disk locations the server uses: the SQLite
// database file and the directory of extra app catalog files.
//
// Configured paths may start with "~" or contain environment variables:
//
//	path, err := paths.Expand("~/.webdesk/webdesk.db")
//	if err == nil {
//	    err = paths.EnsureParent(path)
//	}
//
// SQLite's ":memory:" and "file:" names are left untouched.
package paths
