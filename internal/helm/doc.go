// Package helm drives the helm CLI to manage Spark Operator releases.
//
// The [Client] lists releases, reads a release's computed values, performs
// install-or-upgrade and deletes releases. Every operation is one helm
// subprocess issued through a [runner.Runner]; JSON output is parsed into
// typed [Release] records. Release values are always piped to helm on
// standard input, never placed on the command line.
//
// Absence is reported separately from failure: a release that does not
// exist yields [ErrReleaseNotFound] from [Client.GetReleaseValues] and a
// nil error from [Client.Delete].
package helm
