// Package operator implements the Spark Operator lifecycle on top of the
// helm and kubectl clients.
//
// A namespace holds at most one managed release. [Controller.Install]
// refuses when one exists, while [Controller.Uninstall] and
// [Controller.KubectlConfig] require exactly one. Every workflow is a
// strict sequence of subprocess calls in which each step depends on the
// state the previous step observed.
//
// Install checks for existing releases and then creates one in two separate
// calls. Two installs racing into the same namespace can both pass the
// check; nothing here guards that window.
package operator
