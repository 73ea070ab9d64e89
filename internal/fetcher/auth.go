package fetcher

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/hashicorp/go-hclog"
	crssh "golang.org/x/crypto/ssh"

	"github.com/threadlint/threadlint/pkg/shared/files"
)

// Supported authentication types.
const (
	AuthTypeHTTP     = "http"
	AuthTypeSSHKey   = "ssh-key"
	AuthTypeSSHAgent = "ssh-agent"
)

// Credentials come from the environment, never from flags or the config file.
const (
	UsernameEnvVar       = "THREADLINT_GIT_USERNAME"
	TokenEnvVar          = "THREADLINT_GIT_TOKEN"
	SSHKeyPasswordEnvVar = "THREADLINT_SSH_KEY_PASSWORD"
)

// Authenticator builds a transport auth method for one fetch request.
type Authenticator interface {
	SetupAuth(req FetchRequest, logger hclog.Logger) (transport.AuthMethod, error)
}

// SSHKeyAuthenticator provides SSH key-based authentication.
type SSHKeyAuthenticator struct{}

// SSHAgentAuthenticator provides SSH agent-based authentication.
type SSHAgentAuthenticator struct{}

// HTTPAuthenticator provides HTTP basic authentication.
type HTTPAuthenticator struct{}

// SetupAuth configures SSH key authentication. The key passphrase, if any,
// comes from THREADLINT_SSH_KEY_PASSWORD.
func (s *SSHKeyAuthenticator) SetupAuth(req FetchRequest, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up SSH key authentication", "key", req.SSHKeyPath)

	sshKeyPath, err := files.ExpandPath(req.SSHKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand SSH key path: %w", err)
	}

	auth, err := ssh.NewPublicKeysFromFile("git", sshKeyPath, os.Getenv(SSHKeyPasswordEnvVar))
	if err != nil {
		return nil, fmt.Errorf("failed to set up SSH key authentication: %w", err)
	}

	auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
		HostKeyCallback: crssh.InsecureIgnoreHostKey(), // TODO: support known_hosts verification
	}

	return auth, nil
}

// SetupAuth configures SSH agent authentication.
func (s *SSHAgentAuthenticator) SetupAuth(req FetchRequest, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up SSH agent authentication")

	auth, err := ssh.NewSSHAgentAuth("git")
	if err != nil {
		return nil, fmt.Errorf("failed to set up SSH agent authentication: %w", err)
	}

	auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
		HostKeyCallback: crssh.InsecureIgnoreHostKey(), // TODO: support known_hosts verification
	}

	return auth, nil
}

// SetupAuth configures HTTP basic authentication. Without a token the clone
// proceeds anonymously, which is enough for public repositories.
func (h *HTTPAuthenticator) SetupAuth(req FetchRequest, logger hclog.Logger) (transport.AuthMethod, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		logger.Debug("no git token in the environment, fetching anonymously")
		return nil, nil
	}

	username := os.Getenv(UsernameEnvVar)
	if username == "" {
		username = "git"
	}

	logger.Debug("setting up HTTP authentication", "username", username)
	return &githttp.BasicAuth{
		Username: username,
		Password: token,
	}, nil
}

// getAuthenticator returns the authenticator for the given auth type.
func getAuthenticator(authType string) (Authenticator, error) {
	switch authType {
	case AuthTypeSSHKey:
		return &SSHKeyAuthenticator{}, nil
	case AuthTypeSSHAgent:
		return &SSHAgentAuthenticator{}, nil
	case AuthTypeHTTP:
		return &HTTPAuthenticator{}, nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", authType)
	}
}
