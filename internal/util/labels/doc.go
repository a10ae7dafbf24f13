// Package labels provides consistent labeling for Spark Operator releases.
//
// All labels use the sparkop.io domain prefix. Releases carry them as helm
// release labels so that discovery only ever sees releases this tool
// created.
package labels
