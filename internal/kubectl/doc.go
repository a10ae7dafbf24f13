// Package kubectl drives the kubectl CLI to read cluster connection data,
// read service account credentials and delete cluster resources.
//
// Its main product is a scoped kubeconfig: [Client.RenderAccessConfig]
// combines the active cluster's name and API server URL with a service
// account's CA bundle and bearer token into a document naming exactly one
// cluster, one user and one current context.
package kubectl
