// Package cliopts builds command-line option fragments for the helm and
// kubectl invocations issued by sparkop.
//
// An [Options] value is an ordered, immutable mapping of logical option
// names (words joined by underscores) to values. Rendering turns each name
// into a double-dash flag with hyphens:
//
//	create_namespace=true   -> --create-namespace
//	create_namespace=false  -> (omitted)
//	namespace="team a"      -> --namespace 'team a'
//	version=nil             -> --version ''
//
// Every non-boolean value is shell-quoted on its own, so the fragment can be
// interpolated into a shell command line without word splitting or
// injection. [Options.Add] returns a new set and never mutates the receiver.
package cliopts
