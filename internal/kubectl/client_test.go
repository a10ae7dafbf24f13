package kubectl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/yaml"

	"github.com/mlops-platform/sparkop/internal/cliopts"
	"github.com/mlops-platform/sparkop/internal/runner"
)

const minifiedConfig = `{
  "kind": "Config",
  "apiVersion": "v1",
  "clusters": [
    {"name": "prod-eu", "cluster": {"server": "https://10.0.0.1:6443", "certificate-authority-data": "DATA+OMITTED"}}
  ],
  "contexts": [
    {"name": "admin@prod-eu", "context": {"cluster": "prod-eu", "user": "admin"}}
  ],
  "users": [
    {"name": "admin", "user": {"token": "REDACTED"}}
  ],
  "current-context": "admin@prod-eu"
}`

// script answers commands by matching the first registered substring.
type script []struct {
	contains string
	result   *runner.Result
}

func (s script) runner() *runner.MockRunner {
	return &runner.MockRunner{
		RunFunc: func(_ context.Context, cmd runner.Command) (*runner.Result, error) {
			for _, step := range s {
				if strings.Contains(cmd.Line, step.contains) {
					return step.result, nil
				}
			}
			return nil, errors.New("unexpected command: " + cmd.Line)
		},
	}
}

func TestClient_CurrentClusterInfo(t *testing.T) {
	t.Parallel()
	m := script{{"config view", &runner.Result{Stdout: minifiedConfig}}}.runner()
	c := NewClient(m)

	info, err := c.CurrentClusterInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ClusterInfo{Name: "prod-eu", ControlPlaneURL: "https://10.0.0.1:6443"}, info)
	require.Len(t, m.Calls, 1)
	assert.Equal(t, "kubectl config view --output json --minify", m.Calls[0].Line)
	assert.True(t, m.Calls[0].CaptureStdout)
}

func TestClient_CurrentClusterInfo_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		result *runner.Result
	}{
		{"non-zero exit", &runner.Result{ExitCode: 1, Stderr: "error: no configuration"}},
		{"invalid document", &runner.Result{Stdout: "{not json"}},
		{"no clusters", &runner.Result{Stdout: `{"kind":"Config","apiVersion":"v1","clusters":[]}`}},
		{"cluster without server", &runner.Result{Stdout: `{"kind":"Config","apiVersion":"v1","clusters":[{"name":"a","cluster":{}}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewClient(script{{"config view", tt.result}}.runner())

			_, err := c.CurrentClusterInfo(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigParse)
		})
	}
}

func TestClient_CurrentClusterInfo_FallsBackToFirstCluster(t *testing.T) {
	t.Parallel()
	doc := `{"kind":"Config","apiVersion":"v1","clusters":[
		{"name":"zeta","cluster":{"server":"https://z"}},
		{"name":"alpha","cluster":{"server":"https://a"}}
	]}`
	c := NewClient(script{{"config view", &runner.Result{Stdout: doc}}}.runner())

	info, err := c.CurrentClusterInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alpha", info.Name)
	assert.Equal(t, "https://a", info.ControlPlaneURL)
}

func TestClient_ServiceAccountCredential(t *testing.T) {
	t.Parallel()
	m := script{
		{"get serviceAccount", &runner.Result{Stdout: "spark-sa-token-x7k2p"}},
		{"get secret", &runner.Result{Stdout: `{"data":{"ca.crt":"QQ==","token":"dGVzdA=="}}`}},
	}.runner()
	c := NewClient(m)

	sa, err := c.ServiceAccountCredential(context.Background(), "spark-sa", "team-a")

	require.NoError(t, err)
	assert.Equal(t, ServiceAccountInfo{
		Name:                     "spark-sa",
		Namespace:                "team-a",
		Token:                    "test",
		CertificateAuthorityData: "QQ==",
	}, sa)

	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "kubectl get serviceAccount spark-sa --namespace team-a --output 'jsonpath={.secrets[0].name}'", lines[0])
	assert.Equal(t, "kubectl get secret spark-sa-token-x7k2p --namespace team-a --output json", lines[1])
	assert.False(t, m.Calls[0].Sensitive)
	assert.True(t, m.Calls[1].Sensitive)
}

func TestClient_ServiceAccountCredential_SameNamedSecretFallback(t *testing.T) {
	t.Parallel()
	m := script{
		{"get serviceAccount", &runner.Result{Stdout: ""}},
		{"get secret", &runner.Result{Stdout: `{"data":{"ca.crt":"QQ==","token":"dGVzdA=="}}`}},
	}.runner()
	c := NewClient(m)

	_, err := c.ServiceAccountCredential(context.Background(), "spark-sa", "team-a")

	require.NoError(t, err)
	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "kubectl get secret spark-sa --namespace team-a --output json", lines[1])
}

func TestClient_ServiceAccountCredential_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		sa      *runner.Result
		secret  *runner.Result
		errIs   error
		wantMsg string
	}{
		{
			name:   "malformed token",
			sa:     &runner.Result{Stdout: "s"},
			secret: &runner.Result{Stdout: `{"data":{"ca.crt":"QQ==","token":"not base64!"}}`},
			errIs:  ErrCredentialDecode,
		},
		{
			name:   "token with embedded newline",
			sa:     &runner.Result{Stdout: "s"},
			secret: &runner.Result{Stdout: `{"data":{"ca.crt":"QQ==","token":"dGVz\ndA=="}}`},
			errIs:  ErrCredentialDecode,
		},
		{
			name:   "token with non-canonical padding bits",
			sa:     &runner.Result{Stdout: "s"},
			secret: &runner.Result{Stdout: `{"data":{"ca.crt":"QQ==","token":"dGVzdB=="}}`},
			errIs:  ErrCredentialDecode,
		},
		{
			name:   "missing token",
			sa:     &runner.Result{Stdout: "s"},
			secret: &runner.Result{Stdout: `{"data":{"ca.crt":"QQ=="}}`},
			errIs:  ErrSecretIncomplete,
		},
		{
			name:   "missing ca",
			sa:     &runner.Result{Stdout: "s"},
			secret: &runner.Result{Stdout: `{"data":{"token":"dGVzdA=="}}`},
			errIs:  ErrSecretIncomplete,
		},
		{
			name:   "secret read fails",
			sa:     &runner.Result{Stdout: "s"},
			secret: &runner.Result{ExitCode: 1, Stderr: `Error from server (NotFound): secrets "s" not found`},
			errIs:  ErrCommandFailed,
		},
		{
			name:    "service account read fails",
			sa:      &runner.Result{ExitCode: 1, Stderr: "forbidden"},
			errIs:   ErrCommandFailed,
			wantMsg: "service account team-a/spark-sa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := script{{"get serviceAccount", tt.sa}}
			if tt.secret != nil {
				s = append(s, script{{"get secret", tt.secret}}...)
			}
			c := NewClient(s.runner())

			_, err := c.ServiceAccountCredential(context.Background(), "spark-sa", "team-a")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.errIs)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClient_RenderAccessConfig(t *testing.T) {
	t.Parallel()
	m := script{
		{"config view", &runner.Result{Stdout: minifiedConfig}},
		{"get serviceAccount", &runner.Result{}},
		{"get secret", &runner.Result{Stdout: `{"data":{"ca.crt":"QQ==","token":"dGVzdA=="}}`}},
	}.runner()
	c := NewClient(m)

	doc, err := c.RenderAccessConfig(context.Background(), "spark-sa", "team-a")

	require.NoError(t, err)
	assert.Contains(t, doc, "certificate-authority-data: QQ==")
	assert.Contains(t, doc, "token: test")
	assert.Contains(t, doc, "current-context: spark-sa@prod-eu")

	cfg, err := clientcmd.Load([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cfg.Clusters, 1)
	require.Len(t, cfg.Contexts, 1)
	require.Len(t, cfg.AuthInfos, 1)

	cluster := cfg.Clusters["prod-eu"]
	require.NotNil(t, cluster)
	assert.Equal(t, "https://10.0.0.1:6443", cluster.Server)
	assert.Equal(t, []byte("A"), cluster.CertificateAuthorityData)

	kctx := cfg.Contexts["spark-sa@prod-eu"]
	require.NotNil(t, kctx)
	assert.Equal(t, "prod-eu", kctx.Cluster)
	assert.Equal(t, "team-a", kctx.Namespace)
	assert.Equal(t, "spark-sa", kctx.AuthInfo)
	assert.Equal(t, "test", cfg.AuthInfos["spark-sa"].Token)
}

func TestClient_RenderAccessConfig_StopsOnClusterError(t *testing.T) {
	t.Parallel()
	m := script{{"config view", &runner.Result{ExitCode: 1}}}.runner()
	c := NewClient(m)

	doc, err := c.RenderAccessConfig(context.Background(), "spark-sa", "team-a")

	require.ErrorIs(t, err, ErrConfigParse)
	assert.Empty(t, doc)
	assert.Len(t, m.Calls, 1)
}

func TestClient_CertificateAuthorityKeptVerbatim(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		ca     string
		inline bool
	}{
		{"canonical", "QQ==", true},
		{"non-canonical padding bits", "QR==", true},
		{"line wrapped", "QUJD\nREVG", false},
		{"not base64 at all", "%%%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			secret, err := json.Marshal(map[string]map[string]string{
				"data": {"ca.crt": tt.ca, "token": "dGVzdA=="},
			})
			require.NoError(t, err)
			c := NewClient(script{
				{"config view", &runner.Result{Stdout: minifiedConfig}},
				{"get serviceAccount", &runner.Result{}},
				{"get secret", &runner.Result{Stdout: string(secret)}},
			}.runner())

			sa, err := c.ServiceAccountCredential(context.Background(), "spark-sa", "team-a")
			require.NoError(t, err)
			assert.Equal(t, tt.ca, sa.CertificateAuthorityData)

			out, err := c.RenderAccessConfig(context.Background(), "spark-sa", "team-a")
			require.NoError(t, err)
			if tt.inline {
				assert.Contains(t, out, "certificate-authority-data: "+tt.ca+"\n")
			}

			var doc kubeconfigDocument
			require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
			require.Len(t, doc.Clusters, 1)
			assert.Equal(t, tt.ca, doc.Clusters[0].Cluster.CertificateAuthorityData)
			assert.Equal(t, "test", doc.Users[0].User.Token)
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "dGVzdA==", "test", false},
		{"newline", "dGVz\ndA==", "", true},
		{"carriage return", "dGVz\rdA==", "", true},
		{"space", "dGVz dA==", "", true},
		{"url alphabet", "dGVz_A==", "", true},
		{"missing padding", "dGVzdA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := decodeStrict(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		namespace string
		result    *runner.Result
		expected  string
		wantErr   bool
	}{
		{
			name:     "cluster scoped",
			result:   &runner.Result{},
			expected: "kubectl delete namespace/team-a",
		},
		{
			name:      "namespaced",
			namespace: "team-a",
			result:    &runner.Result{},
			expected:  "kubectl delete namespace/team-a --namespace team-a",
		},
		{
			name:     "already gone",
			result:   &runner.Result{ExitCode: 1, Stderr: `Error from server (NotFound): namespaces "team-a" not found`},
			expected: "kubectl delete namespace/team-a",
		},
		{
			name:     "genuine failure",
			result:   &runner.Result{ExitCode: 1, Stderr: "Error from server (Forbidden): namespaces is forbidden"},
			expected: "kubectl delete namespace/team-a",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := script{{"delete", tt.result}}.runner()
			c := NewClient(m)

			err := c.Delete(context.Background(), "namespace", "team-a", tt.namespace)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrDeleteFailed)
				assert.Contains(t, err.Error(), "Forbidden")
			} else {
				require.NoError(t, err)
			}
			require.Len(t, m.Calls, 1)
			assert.Equal(t, tt.expected, m.Calls[0].Line)
			assert.True(t, m.Calls[0].CaptureStderr)
			assert.False(t, m.Calls[0].CaptureStdout)
		})
	}
}

func TestClient_GlobalOptionsAndBinary(t *testing.T) {
	t.Parallel()
	m := script{{"delete", &runner.Result{}}}.runner()
	c := NewClient(m,
		WithBinary("/opt/bin/kubectl"),
		WithGlobalOptions(cliopts.New(cliopts.Opt("context", "prod eu"))),
	)

	require.NoError(t, c.Delete(context.Background(), "namespace", "team-a", ""))

	assert.Equal(t, "/opt/bin/kubectl delete namespace/team-a --context 'prod eu'", m.Lines()[0])
}
