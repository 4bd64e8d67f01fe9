// Package files provides file system operations for the indicator combiner.
//
// Discovery lists the candidate sources of a group directory. It returns
// every regular file, sorted by name, and leaves classification to the
// caller. A missing or empty directory is an error.
//
// WriteAtomic writes an output file through a temporary sibling that is
// renamed into place once complete.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	sources, err := discovery.ListSources("data/dependent-vars")
//
//	err = files.WriteAtomic("data/dependent_variables.csv", func(w io.Writer) error {
//	    _, err := io.WriteString(w, "date\n")
//	    return err
//	})
package files
