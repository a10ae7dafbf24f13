package kubectl

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// The clientcmd types hold certificate data as bytes and re-encode it on
// write. These mirror the v1 layout with the CA kept as text so it reaches
// the document exactly as the secret stored it.
type kubeconfigDocument struct {
	APIVersion     string            `json:"apiVersion"`
	Kind           string            `json:"kind"`
	Clusters       []namedCluster    `json:"clusters"`
	Contexts       []namedContext    `json:"contexts"`
	Users          []namedUser       `json:"users"`
	CurrentContext string            `json:"current-context"`
	Preferences    map[string]string `json:"preferences"`
}

type namedCluster struct {
	Name    string       `json:"name"`
	Cluster clusterEntry `json:"cluster"`
}

type clusterEntry struct {
	CertificateAuthorityData string `json:"certificate-authority-data"`
	Server                   string `json:"server"`
}

type namedContext struct {
	Name    string       `json:"name"`
	Context contextEntry `json:"context"`
}

type contextEntry struct {
	Cluster   string `json:"cluster"`
	Namespace string `json:"namespace"`
	User      string `json:"user"`
}

type namedUser struct {
	Name string    `json:"name"`
	User userEntry `json:"user"`
}

type userEntry struct {
	Token string `json:"token"`
}

// RenderKubeconfig renders a self-contained kubeconfig with one cluster,
// one user and one context, which is also the current context.
func RenderKubeconfig(cluster ClusterInfo, sa ServiceAccountInfo) (string, error) {
	contextName := sa.ContextName(cluster)

	doc := kubeconfigDocument{
		APIVersion: "v1",
		Kind:       "Config",
		Clusters: []namedCluster{{
			Name: cluster.Name,
			Cluster: clusterEntry{
				CertificateAuthorityData: sa.CertificateAuthorityData,
				Server:                   cluster.ControlPlaneURL,
			},
		}},
		Contexts: []namedContext{{
			Name: contextName,
			Context: contextEntry{
				Cluster:   cluster.Name,
				Namespace: sa.Namespace,
				User:      sa.Name,
			},
		}},
		Users: []namedUser{{
			Name: sa.Name,
			User: userEntry{Token: sa.Token},
		}},
		CurrentContext: contextName,
		Preferences:    map[string]string{},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}
	return string(out), nil
}
