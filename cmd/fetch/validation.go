package fetch

import (
	"fmt"
	"net/url"
	"os"

	"golang.org/x/crypto/ssh"

	"github.com/threadlint/threadlint/internal/fetcher"
	"github.com/threadlint/threadlint/pkg/shared"
	"github.com/threadlint/threadlint/pkg/shared/files"
)

// validateFetchArgs validates the arguments provided to the fetch command.
func validateFetchArgs(options *RunOptionsFetch, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	if options.AuthType == "" {
		return fmt.Errorf("the 'auth-type' flag must be specified")
	}

	authTypesList := []string{fetcher.AuthTypeHTTP, fetcher.AuthTypeSSHKey, fetcher.AuthTypeSSHAgent}
	if !shared.IsInList(options.AuthType, authTypesList) {
		return fmt.Errorf("unknown auth-type: %v", options.AuthType)
	}

	if options.AuthType == fetcher.AuthTypeSSHKey {
		if options.SSHKey == "" {
			return fmt.Errorf("you must specify ssh-key with auth-type 'ssh-key'")
		}
		if err := validateSSHKey(options.SSHKey); err != nil {
			return err
		}
	}

	if len(args) == 0 && options.InputFile == "" {
		return fmt.Errorf("either 'input-file' flag or a target URL must be specified")
	}

	if options.InputFile != "" && len(args) != 0 {
		return fmt.Errorf("you cannot use 'input-file' flag with a target URL")
	}

	if options.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	if len(args) == 1 {
		if _, err := url.ParseRequestURI(args[0]); err != nil {
			return fmt.Errorf("provided URL is not valid: %w", err)
		}
	}

	return nil
}

// validateSSHKey checks that the key file exists and holds a parseable
// private key. A passphrase-protected key passes; the passphrase itself only
// gets checked when the fetch sets up authentication.
func validateSSHKey(sshKeyPath string) error {
	expandedPath, err := files.ExpandPath(sshKeyPath)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", sshKeyPath, err)
	}

	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}

	keyData, err := os.ReadFile(expandedPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file: %w", err)
	}

	if _, err := ssh.ParsePrivateKey(keyData); err != nil {
		if _, ok := err.(*ssh.PassphraseMissingError); !ok {
			return fmt.Errorf("invalid SSH key format: %w", err)
		}
	}
	return nil
}
