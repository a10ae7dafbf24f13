package kubectl

import "errors"

// ClusterInfo identifies the cluster of the active kubectl context.
type ClusterInfo struct {
	Name            string
	ControlPlaneURL string
}

// ServiceAccountInfo holds the credentials of one service account.
type ServiceAccountInfo struct {
	Name      string
	Namespace string
	// Token is the decoded bearer token.
	Token string
	// CertificateAuthorityData is the base64 CA bundle exactly as stored
	// in the secret.
	CertificateAuthorityData string
}

// ContextName returns the kubeconfig context name for the account on cluster.
func (sa ServiceAccountInfo) ContextName(cluster ClusterInfo) string {
	return sa.Name + "@" + cluster.Name
}

var (
	// ErrConfigParse is returned when `kubectl config view` output cannot be used.
	ErrConfigParse = errors.New("failed to read current kubeconfig")

	// ErrCommandFailed is returned when a read command exits non-zero.
	ErrCommandFailed = errors.New("kubectl command failed")

	// ErrSecretIncomplete is returned when a service account secret lacks a
	// token or CA bundle.
	ErrSecretIncomplete = errors.New("service account secret is incomplete")

	// ErrCredentialDecode is returned for malformed base64 credential data.
	ErrCredentialDecode = errors.New("failed to decode service account credential")

	// ErrDeleteFailed is returned when `kubectl delete` exits non-zero for a
	// reason other than the resource being absent.
	ErrDeleteFailed = errors.New("failed to delete resource")
)
