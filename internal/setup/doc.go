// Package setup provides the setup document core for ElephAnt.
//
// A setup is a sectioned key-value document: named sections in a declared
// order, each holding string keys and string values. The package manages
// creating a setup from the default schema, loading and saving it as TOML,
// tracking unsaved changes, and notifying observers when values change.
//
// # Basic Usage
//
// Create a setup with defaults and edit it through section views:
//
//	st := setup.New()
//	st.General().Set("setup_name", "Bench 3")
//	fmt.Println(st.IsDirty()) // true
//
// Load and save:
//
//	st := setup.New()
//	if err := st.Load("bench3.toml"); err != nil {
//	    // handle ErrNotFound or *ParseError
//	}
//	// ... edits ...
//	if err := st.Save(""); err != nil {
//	    // "" reuses the load path; ErrNoTarget if there is none
//	}
//
// # Default Injection
//
// Every section and key of the default schema is guaranteed to exist after
// New or Load. Keys missing from a loaded file are repaired with their
// default value and logged as warnings, never reported as errors. Downstream
// consumers (the binder, the UI tree) can therefore assume the full schema
// is always present.
//
// # Error Handling
//
// The package defines several error values:
//
//   - ErrNotFound: load target does not exist
//   - ErrNoTarget: save attempted with no path supplied or remembered
//   - ErrWriteFailed: I/O failure while writing the setup file
//   - *ParseError: the setup file is not valid TOML
//
// All are recoverable; none are fatal to the application.
package setup
