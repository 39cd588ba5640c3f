package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/werewolfd/internal/game"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server  ServerSettings `hcl:"server,block"`
	Presets []PresetConfig `hcl:"preset,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address    string `hcl:"address,optional"`
	Port       int    `hcl:"port,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	LogFile    string `hcl:"log_file,optional"`
	ResultsDir string `hcl:"results_dir,optional"`
	AdminToken string `hcl:"admin_token,optional"`
}

// PresetConfig defines a named game configuration loadable in the
// lobby. Role blocks keep their file order, which is the display order.
type PresetConfig struct {
	Name     string            `hcl:"name,label"`
	Roles    []RoleConfig      `hcl:"role,block"`
	Settings map[string]string `hcl:"settings,optional"`
}

// RoleConfig sets the headcount for one role in a preset
type RoleConfig struct {
	Name  string `hcl:"name,label"`
	Count int    `hcl:"count"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:    "localhost",
			Port:       8080,
			LogLevel:   "info",
			LogFile:    "werewolfd.log",
			ResultsDir: "results",
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.LogFile == "" {
		config.Server.LogFile = "werewolfd.log"
	}
	if config.Server.ResultsDir == "" {
		config.Server.ResultsDir = "results"
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	for _, preset := range c.Presets {
		if len(preset.Roles) == 0 {
			return fmt.Errorf("preset %s: at least one role must be configured", preset.Name)
		}
		for _, role := range preset.Roles {
			if _, err := game.ParseRoleType(role.Name); err != nil {
				return fmt.Errorf("preset %s: %w", preset.Name, err)
			}
			if role.Count < 1 {
				return fmt.Errorf("preset %s: role %s count must be positive", preset.Name, role.Name)
			}
		}
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// BuildRegistry converts the configured presets into a registry. With
// no presets configured the built-in registry is used.
func (c *ServerConfig) BuildRegistry() (*game.ConfigRegistry, error) {
	if len(c.Presets) == 0 {
		return game.DefaultRegistry(), nil
	}

	registry := game.NewConfigRegistry()
	for _, pc := range c.Presets {
		roles := make([]game.RoleCount, len(pc.Roles))
		for i, rc := range pc.Roles {
			t, err := game.ParseRoleType(rc.Name)
			if err != nil {
				return nil, fmt.Errorf("preset %s: %w", pc.Name, err)
			}
			roles[i] = game.RoleCount{Type: t, Count: rc.Count}
		}
		if err := registry.Add(game.Preset{Name: pc.Name, Roles: roles, Settings: pc.Settings}); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
