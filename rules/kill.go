// Package rules evaluates the tengo scripts that decide gameplay outcomes.
package rules

import (
	"errors"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

// DefaultKillRule is the embedded script used when no path is given.
const DefaultKillRule = "kill_rule.tengo"

var ErrNoVerdict = errors.New("rules: script did not set kill")

// Script is a compiled kill rule. It reads the globals kind, night and
// state and must leave a bool in kill.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

// LoadKillRule compiles the script at path, or the embedded default when
// path is empty.
func LoadKillRule(path string) (*Script, error) {
	var (
		src []byte
		err error
	)
	if path == "" {
		path = DefaultKillRule
		src, err = prefabs.LoadScript(path)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	return Compile(path, src)
}

func Compile(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("kind", "")
	_ = script.Add("night", false)
	_ = script.Add("state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rules: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string {
	return s.name
}

// Kills runs the rule for one contact between the player and an NPC.
func (s *Script) Kills(kind component.NPCKind, night bool, state component.NPCState) (bool, error) {
	if s == nil || s.compiled == nil {
		return false, fmt.Errorf("rules: nil script")
	}
	if err := s.compiled.Set("kind", kind.String()); err != nil {
		return false, err
	}
	if err := s.compiled.Set("night", night); err != nil {
		return false, err
	}
	if err := s.compiled.Set("state", state.String()); err != nil {
		return false, err
	}
	if err := s.compiled.Run(); err != nil {
		return false, fmt.Errorf("rules: run %s: %w", s.name, err)
	}
	if !s.compiled.IsDefined("kill") {
		return false, ErrNoVerdict
	}
	return s.compiled.Get("kill").Bool(), nil
}
