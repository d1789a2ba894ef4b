package docker

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// BundledFileName is the name the bundled service definition is written under
const BundledFileName = "selenium-grid.docker.yml"

//go:embed selenium-grid.docker.yml
var bundledComposeFile []byte

// ComposeFile represents the parts of a service-definition file we inspect
type ComposeFile struct {
	Services map[string]Service `yaml:"services"`
}

// Service represents one compose service
type Service struct {
	Image     string   `yaml:"image"`
	Ports     []string `yaml:"ports,omitempty"`
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// ServiceNames returns the declared services in sorted order
func (c *ComposeFile) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Images returns service name to image, for services that declare one
func (c *ComposeFile) Images() map[string]string {
	images := make(map[string]string, len(c.Services))
	for name, svc := range c.Services {
		if svc.Image != "" {
			images[name] = svc.Image
		}
	}

	return images
}

// LoadComposeFile loads and parses a service-definition file
func LoadComposeFile(path string) (*ComposeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}

	return parseComposeFile(data)
}

// Bundled returns the parsed service definition shipped with the binary
func Bundled() (*ComposeFile, error) {
	return parseComposeFile(bundledComposeFile)
}

func parseComposeFile(data []byte) (*ComposeFile, error) {
	var file ComposeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse compose YAML: %w", err)
	}

	if len(file.Services) == 0 {
		return nil, fmt.Errorf("compose file declares no services")
	}

	return &file, nil
}

// WriteBundled writes the bundled service definition into dir and returns
// its path. The file is only rewritten when its content differs.
func WriteBundled(dir string) (string, error) {
	path := filepath.Join(dir, BundledFileName)

	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, bundledComposeFile) {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := os.WriteFile(path, bundledComposeFile, 0644); err != nil {
		return "", fmt.Errorf("failed to write compose file: %w", err)
	}

	return path, nil
}

// ResolveComposeFile returns override when set, otherwise the bundled file
// materialized into the user cache directory.
func ResolveComposeFile(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate cache directory: %w", err)
	}

	return WriteBundled(filepath.Join(cacheDir, "selenium-grid"))
}
