// Package logging builds the logr.Logger handed to every sparkop component.
//
// The sink is zap. Verbosity follows the repeated -v flag: -v shows info
// logs, -vv adds the helm and kubectl command lines, -vvv adds their output.
package logging
