package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/glasspane/webtop/internal/infrastructure/logging"
	"github.com/glasspane/webtop/internal/shared/types"
)

// WindowCreator is the slice of the window manager manifest launches use.
type WindowCreator interface {
	Create(title string, content map[string]interface{}, width, height int) *types.Window
}

// Manifest describes a seedable application on disk.
type Manifest struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Icon           string `yaml:"icon"`
	Category       string `yaml:"category"`
	SingleInstance bool   `yaml:"single_instance"`
	Window         struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"window"`
	Content map[string]interface{} `yaml:"content"`
}

// Seeder loads app manifests from a directory and registers each as a
// launchable application whose launch opens a window with the
// manifest-declared title, size, and content.
type Seeder struct {
	registry *Registry
	windows  WindowCreator
	dir      string
	logger   *logging.Logger
}

// NewSeeder creates a manifest seeder.
func NewSeeder(registry *Registry, windows WindowCreator, dir string, logger *logging.Logger) *Seeder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Seeder{registry: registry, windows: windows, dir: dir, logger: logger}
}

// Seed walks the manifest directory and registers every valid
// *.app.yaml file. Malformed manifests are logged and skipped; seeding
// continues. Returns the number of apps registered.
func (s *Seeder) Seed() (int, error) {
	if s.dir == "" {
		return 0, nil
	}
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		s.logger.Warn("Apps directory not found", zap.String("dir", s.dir))
		return 0, nil
	}

	loaded := 0
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".app.yaml") {
			return nil
		}

		if err := s.seedFile(path); err != nil {
			s.logger.Warn("Skipping app manifest",
				zap.String("path", path),
				zap.Error(err),
			)
			return nil
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("failed to walk apps directory: %w", err)
	}

	s.logger.Info("App seeding complete",
		zap.String("dir", s.dir),
		zap.Int("loaded", loaded),
	)
	return loaded, nil
}

func (s *Seeder) seedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	title := manifest.Window.Title
	if title == "" {
		title = manifest.Name
	}
	width := manifest.Window.Width
	height := manifest.Window.Height
	content := manifest.Content

	return s.registry.Register(&types.Registration{
		ID:             manifest.ID,
		Name:           manifest.Name,
		Icon:           manifest.Icon,
		Category:       manifest.Category,
		SingleInstance: manifest.SingleInstance,
		Launch: func() (*types.Window, error) {
			return s.windows.Create(title, content, width, height), nil
		},
	})
}
