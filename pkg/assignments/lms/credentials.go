package lms

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/pkg/errors"
)

const credentialsFileName = "brightspace_credentials.json"

// Credentials are the LMS connection settings. The token is stored in plain
// text in the local document.
type Credentials struct {
	BrightspaceURL string `json:"brightspaceUrl" validate:"required"`
	AccessToken    string `json:"accessToken" validate:"required"`
	AutoSync       bool   `json:"autoSync"`
}

// CredentialsStore persists the connection settings as a single whole-document
// JSON file, with the same no-lock semantics as the assignment store
type CredentialsStore struct {
	Dir    string
	Logger logger.Interface
}

func (s *CredentialsStore) documentPath() string {
	return filepath.Join(s.Dir, credentialsFileName)
}

// Load reads the stored credentials, or nil when no usable document exists
func (s *CredentialsStore) Load() *Credentials {
	binary, err := ioutil.ReadFile(s.documentPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.Logger.Warning("Could not read credentials document", err)
		}
		return nil
	}

	var credentials Credentials
	err = json.Unmarshal(binary, &credentials)
	if err != nil {
		s.Logger.Warning("Credentials document is corrupt", err)
		return nil
	}

	return &credentials
}

// Save overwrites the credentials document wholesale
func (s *CredentialsStore) Save(credentials *Credentials) error {
	err := os.MkdirAll(s.Dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "could not create data directory")
	}

	binary, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal credentials")
	}

	err = ioutil.WriteFile(s.documentPath(), binary, 0o600)
	if err != nil {
		return errors.Wrap(err, "could not write credentials document")
	}

	return nil
}

// Clear deletes the credentials document. Clearing absent credentials is a
// no-op.
func (s *CredentialsStore) Clear() error {
	err := os.Remove(s.documentPath())
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "could not delete credentials document")
	}

	return nil
}

// AreConfigured reports whether a document with a non-empty base URL and
// token exists
func (s *CredentialsStore) AreConfigured() bool {
	credentials := s.Load()
	return credentials != nil && credentials.BrightspaceURL != "" && credentials.AccessToken != ""
}
