// Package app provides the application context for loadout.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths *config.Paths // File system paths
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	app := app.New()
//
//	// Testing with custom dependencies
//	app := app.New(app.WithPaths(testPaths))
//
// Commands access the process-wide instance through Default; tests swap
// it with SetDefault and restore it afterwards.
package app
