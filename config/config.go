package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultRoot is the projects directory scanned when nothing else is configured.
const DefaultRoot = "/Users/apurva/Projects/AI_Agents"

// EnvPrefix prefixes environment overrides, e.g. DOCSCAN_ROOT.
const EnvPrefix = "DOCSCAN"

// Config holds the resolved startup settings.
// Root, Exclude and Gitignore shape the document set; the rest are ambient.
type Config struct {
	Root       string
	LogLevel   string
	LogFile    string
	Exclude    []string
	Gitignore  bool   // honor <root>/.gitignore in addition to .docscanignore
	ConfigFile string // config file actually read, "" if none
}

// RegisterFlags adds the persistent docscan flags to a flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Config file (default: $HOME/.config/docscan/docscan.yaml or ./docscan.yaml)")
	flags.String("root", DefaultRoot, "Projects directory to scan")
	flags.StringArray("exclude", nil, "Extra ignore pattern, matched against root-relative paths (repeatable)")
	flags.Bool("gitignore", false, "Also skip documents matched by the root .gitignore")
	flags.String("log-level", "warn", "Log level: debug|info|warn|error")
	flags.String("log-file", "", "Log file path (default: stderr)")
}

// Load resolves settings with precedence flag > environment > config file > default.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for _, name := range []string{"root", "exclude", "gitignore", "log-level", "log-file"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "docscan"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("docscan")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	root := strings.TrimSpace(v.GetString("root"))
	if root == "" {
		root = DefaultRoot
	}

	return &Config{
		Root:       root,
		LogLevel:   v.GetString("log-level"),
		LogFile:    v.GetString("log-file"),
		Exclude:    v.GetStringSlice("exclude"),
		Gitignore:  v.GetBool("gitignore"),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}
