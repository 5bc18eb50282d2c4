// Package config loads behavior profiles from YAML and runtime options
// from the environment, and assembles them into a runnable driver.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Bonehead-Labs/actorkit/ability"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/event"
	"github.com/Bonehead-Labs/actorkit/fsm"
	"github.com/Bonehead-Labs/actorkit/script"
)

// StateSpec names one registered state. The factory is looked up in the
// host's registry at assembly time
type StateSpec struct {
	ID string `yaml:"id"`
}

// AbilitySpec describes one ability registration. Script abilities name
// a tengo source file (relative to the profile); native abilities are
// looked up in the host's registry
type AbilitySpec struct {
	ID           string `yaml:"id"`
	Script       string `yaml:"script,omitempty"`
	AutoActivate bool   `yaml:"auto_activate,omitempty"`
}

// Profile is a declarative behavior setup for one actor archetype
type Profile struct {
	InitialState   string        `yaml:"initial_state"`
	RecursionLimit int           `yaml:"recursion_limit,omitempty"`
	FailureLog     int           `yaml:"failure_log,omitempty"`
	States         []StateSpec   `yaml:"states"`
	Abilities      []AbilitySpec `yaml:"abilities"`

	baseDir string
}

// Registry maps profile identifiers to host-compiled constructors
type Registry struct {
	States    map[string]fsm.Factory
	Abilities map[string]func() ability.Ability
}

// Load reads and parses a profile file. Script paths inside the profile
// resolve relative to the file's directory
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}
	p.baseDir = filepath.Dir(path)
	return p, nil
}

// Parse decodes a profile from YAML and validates its cross-references
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	if len(p.States) == 0 {
		return fmt.Errorf("profile declares no states")
	}
	seen := make(map[string]bool, len(p.States))
	for _, s := range p.States {
		if s.ID == "" {
			return fmt.Errorf("profile state with empty id")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate profile state %q", s.ID)
		}
		seen[s.ID] = true
	}
	if p.InitialState != "" && !seen[p.InitialState] {
		return fmt.Errorf("initial state %q not declared", p.InitialState)
	}
	abilitySeen := make(map[string]bool, len(p.Abilities))
	for _, a := range p.Abilities {
		if a.ID == "" {
			return fmt.Errorf("profile ability with empty id")
		}
		if abilitySeen[a.ID] {
			return fmt.Errorf("duplicate profile ability %q", a.ID)
		}
		abilitySeen[a.ID] = true
	}
	return nil
}

// AssembleOption adjusts how a profile is turned into live components
type AssembleOption func(*assembleConfig)

type assembleConfig struct {
	sink   event.Sink
	logger *slog.Logger
	clock  core.TimeProvider
}

// WithSink routes lifecycle notifications from the assembled components
func WithSink(s event.Sink) AssembleOption {
	return func(c *assembleConfig) { c.sink = s }
}

// WithLogger sets the logger for the assembled components
func WithLogger(l *slog.Logger) AssembleOption {
	return func(c *assembleConfig) { c.logger = l }
}

// WithClock sets the time provider for the assembled components
func WithClock(clock core.TimeProvider) AssembleOption {
	return func(c *assembleConfig) { c.clock = clock }
}

// Assemble builds the state machine and ability manager the profile
// describes, registers everything, and enters the initial state
func (p *Profile) Assemble(body core.Actor, reg Registry, opts ...AssembleOption) (*fsm.Machine, *ability.Manager, error) {
	cfg := assembleConfig{
		sink:   event.Discard,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	machineOpts := []fsm.Option{fsm.WithSink(cfg.sink), fsm.WithLogger(cfg.logger)}
	if p.RecursionLimit > 0 {
		machineOpts = append(machineOpts, fsm.WithTransitionDepthLimit(p.RecursionLimit))
	}
	managerOpts := []ability.Option{ability.WithSink(cfg.sink), ability.WithLogger(cfg.logger)}
	if p.FailureLog > 0 {
		managerOpts = append(managerOpts, ability.WithFailureLogSize(p.FailureLog))
	}
	if cfg.clock != nil {
		machineOpts = append(machineOpts, fsm.WithClock(cfg.clock))
		managerOpts = append(managerOpts, ability.WithClock(cfg.clock))
	}

	machine := fsm.NewMachine(machineOpts...)
	manager := ability.NewManager(body, managerOpts...)

	for _, s := range p.States {
		factory, ok := reg.States[s.ID]
		if !ok {
			return nil, nil, fmt.Errorf("no factory registered for state %q", s.ID)
		}
		if err := machine.Register(s.ID, factory); err != nil {
			return nil, nil, err
		}
	}

	for _, a := range p.Abilities {
		inst, err := p.buildAbility(a, manager, cfg.logger, reg)
		if err != nil {
			return nil, nil, err
		}
		if err := manager.Register(a.ID, inst, a.AutoActivate); err != nil {
			return nil, nil, err
		}
	}

	if p.InitialState != "" {
		if err := machine.TransitionTo(p.InitialState, nil); err != nil {
			return nil, nil, err
		}
	}
	return machine, manager, nil
}

func (p *Profile) buildAbility(spec AbilitySpec, manager *ability.Manager, logger *slog.Logger, reg Registry) (ability.Ability, error) {
	if spec.Script != "" {
		path := spec.Script
		if p.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(p.baseDir, path)
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("ability %q: %w", spec.ID, err)
		}
		inst, err := script.NewAbility(src, script.WithReporter(manager), script.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("ability %q: %w", spec.ID, err)
		}
		return inst, nil
	}
	factory, ok := reg.Abilities[spec.ID]
	if !ok {
		return nil, fmt.Errorf("no factory registered for ability %q", spec.ID)
	}
	return factory(), nil
}
