package altcover

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ZodiacalComet/f2e-alt-cover/exec"
	"github.com/ZodiacalComet/f2e-alt-cover/serve"
)

// DefaultConfigFile is picked up from the working directory when no --config
// flag is given.
const DefaultConfigFile = "f2e-alt-cover.yaml"

// Config carries the defaults that would otherwise be repeated on every
// invocation: font paths for placeholder covers, the fimfic2epub executable,
// the image directory and the cover server address. Flags override any of
// these.
type Config struct {
	ImageDir       string  `yaml:"imageDir"`
	TitleFont      string  `yaml:"titleFont"`
	TitleFontSize  float64 `yaml:"titleFontSize"`
	AuthorFont     string  `yaml:"authorFont"`
	AuthorFontSize float64 `yaml:"authorFontSize"`
	Executable     string  `yaml:"executable"`
	ServerAddr     string  `yaml:"serverAddr"`
	WaitSeconds    int     `yaml:"wait"`
}

func DefaultConfig() Config {
	return Config{
		TitleFontSize:  100,
		AuthorFontSize: 50,
		Executable:     exec.DefaultExecutable(),
		ServerAddr:     serve.DefaultAddr,
		WaitSeconds:    5,
	}
}

// LoadConfig reads the YAML config at path on top of the defaults. An empty
// path falls back to DefaultConfigFile when it exists, or plain defaults
// otherwise; an explicit path that can't be read is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
