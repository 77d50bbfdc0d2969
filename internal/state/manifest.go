package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/researchagg/hostprep/pkg/models"
	"gopkg.in/yaml.v3"
)

const manifestFile = "manifest.yaml"

// RendererState records the installed PDF renderer.
type RendererState struct {
	Version        string    `yaml:"version"`
	PackageVersion string    `yaml:"package_version"`
	URL            string    `yaml:"url"`
	Codename       string    `yaml:"codename"`
	Arch           string    `yaml:"arch"`
	InstalledAt    time.Time `yaml:"installed_at"`
}

// BootstrapState records the prepared runtime environment.
type BootstrapState struct {
	VenvDir     string    `yaml:"venv_dir"`
	EnvFile     string    `yaml:"env_file"`
	CompletedAt time.Time `yaml:"completed_at"`
}

// Manifest is the on-host record of what hostprep has done, read back
// by the doctor command.
type Manifest struct {
	SetupID   string          `yaml:"setup_id,omitempty"`
	Renderer  *RendererState  `yaml:"renderer,omitempty"`
	Bootstrap *BootstrapState `yaml:"bootstrap,omitempty"`
}

// Store persists the manifest in the hostprep lib directory.
type Store struct {
	path string
}

func NewStore() *Store {
	return &Store{path: filepath.Join(models.HostprepLibPath, manifestFile)}
}

// NewStoreAt creates a store with an explicit manifest path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads the manifest. A missing file yields an empty manifest, not
// an error.
func (s *Store) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest, creating the lib directory when needed.
func (s *Store) Save(m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
