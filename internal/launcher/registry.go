package launcher

import (
	_ "embed"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed commands.toml
var commandsTOML []byte

// CommandSet lists default command candidates per platform, most
// preferred first.
type CommandSet struct {
	Linux    []string `toml:"linux,omitempty"`
	Darwin   []string `toml:"darwin,omitempty"`
	Fallback []string `toml:"fallback,omitempty"`
}

type commandsConfig struct {
	Commands map[string]CommandSet `toml:"commands"`
}

// Registry resolves the default plumber and piper commands for the
// running platform from the embedded table.
type Registry struct {
	commands map[string]CommandSet
}

func NewRegistry() (*Registry, error) {
	var cfg commandsConfig
	if err := toml.Unmarshal(commandsTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing commands.toml: %w", err)
	}
	return &Registry{commands: cfg.Commands}, nil
}

// Resolve returns the first candidate for name whose program exists on
// PATH, or the last fallback when none do. Missing tools degrade to a
// best guess rather than an error; the failure then surfaces when the
// command actually runs.
func (r *Registry) Resolve(name string) string {
	set, ok := r.commands[name]
	if !ok {
		return ""
	}
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = set.Darwin
	case "linux":
		candidates = set.Linux
	}
	candidates = append(candidates, set.Fallback...)

	for _, c := range candidates {
		prog := strings.Fields(c)
		if len(prog) == 0 {
			continue
		}
		if _, err := exec.LookPath(prog[0]); err == nil {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[len(candidates)-1]
	}
	return ""
}
