// Package handlers implements the business logic behind each sparkop
// command.
//
// Handlers load configuration, build the runner, clients and controller,
// and render results. Construction goes through package-level factory
// variables so tests can substitute fakes.
package handlers
