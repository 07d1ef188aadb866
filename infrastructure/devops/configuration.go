package devops

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// AppConfig is the deploy-time application configuration. The production
// line roster lives here rather than in code so plants with a different
// line count need no rebuild.
type AppConfig struct {
	Lines  []string `yaml:"lines"`
	Kimbal struct {
		BaseURL  string `yaml:"baseUrl"`
		TenantID string `yaml:"tenantId"`
	} `yaml:"kimbal"`
}

var (
	once    sync.Once
	cfg     *AppConfig
	loadErr error
)

// LoadAppConfig reads the YAML config once. Path comes from CONFIG_PATH,
// defaulting to config.yaml in the working directory. A missing lines list
// falls back to Line-01..Line-18.
func LoadAppConfig() (*AppConfig, error) {
	once.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "config.yaml"
		}

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("read config: %w", err)
			return
		}

		var parsed AppConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if len(parsed.Lines) == 0 {
			for i := 1; i <= 18; i++ {
				parsed.Lines = append(parsed.Lines, fmt.Sprintf("Line-%02d", i))
			}
		}

		cfg = &parsed
	})

	return cfg, loadErr
}
