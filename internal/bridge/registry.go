package bridge

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// AnyAction registers a route that answers to every action token of a skill.
const AnyAction = "*"

// HandlerFunc runs one (skill, action) operation on its positional arguments
// and returns the envelope payload.
type HandlerFunc func(ctx context.Context, args []string) (any, error)

// Route binds a (skill, action) pair to a handler and its argument contract.
type Route struct {
	Skill   string
	Action  string
	MinArgs int
	// Usage is reported verbatim when fewer than MinArgs arguments are given.
	Usage string
	// Label prefixes handler failures, e.g. "Web fetch failed: ".
	Label string
	// Synopsis documents the positional arguments for help output.
	Synopsis string
	Handler  HandlerFunc
}

// RouteError reports an unmatched skill or action token.
type RouteError struct {
	Skill  string
	Action string // empty when the skill itself is unknown
}

func (e *RouteError) Error() string {
	if e.Action == "" {
		return "Unknown skill: " + e.Skill
	}
	return fmt.Sprintf("Unknown %s action: %s", e.Skill, e.Action)
}

// Registry maps skill and action tokens to routes with exact matching.
type Registry struct {
	skills  map[string]map[string]Route
	aliases map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{skills: make(map[string]map[string]Route), aliases: make(map[string]string)}
}

// Register adds a route. Registering the same (skill, action) twice is an error.
func (r *Registry) Register(rt Route) error {
	if rt.Skill == "" || rt.Action == "" {
		return errors.New("route needs a skill and an action")
	}
	if rt.Handler == nil {
		return fmt.Errorf("route %s %s has no handler", rt.Skill, rt.Action)
	}
	if rt.Label == "" {
		return fmt.Errorf("route %s %s has no failure label", rt.Skill, rt.Action)
	}
	if rt.MinArgs > 0 && rt.Usage == "" {
		return fmt.Errorf("route %s %s requires arguments but has no usage message", rt.Skill, rt.Action)
	}
	if _, ok := r.aliases[rt.Skill]; ok {
		return fmt.Errorf("skill %s is an alias", rt.Skill)
	}
	actions := r.skills[rt.Skill]
	if actions == nil {
		actions = make(map[string]Route)
		r.skills[rt.Skill] = actions
	}
	if _, dup := actions[rt.Action]; dup {
		return fmt.Errorf("route %s %s already registered", rt.Skill, rt.Action)
	}
	actions[rt.Action] = rt
	return nil
}

// Alias makes alias resolve to the routes of skill.
func (r *Registry) Alias(alias, skill string) error {
	if _, ok := r.skills[skill]; !ok {
		return fmt.Errorf("alias %s: unknown skill %s", alias, skill)
	}
	if _, ok := r.skills[alias]; ok {
		return fmt.Errorf("alias %s shadows a registered skill", alias)
	}
	r.aliases[alias] = skill
	return nil
}

// Lookup resolves a skill and action token to a route. Error messages name
// the tokens as given.
func (r *Registry) Lookup(skill, action string) (Route, error) {
	name := skill
	if target, ok := r.aliases[skill]; ok {
		name = target
	}
	actions, ok := r.skills[name]
	if !ok {
		return Route{}, &RouteError{Skill: skill}
	}
	if rt, ok := actions[action]; ok {
		return rt, nil
	}
	if rt, ok := actions[AnyAction]; ok {
		return rt, nil
	}
	return Route{}, &RouteError{Skill: skill, Action: action}
}

// Routes returns every route sorted by skill then action.
func (r *Registry) Routes() []Route {
	out := make([]Route, 0)
	for _, actions := range r.skills {
		for _, rt := range actions {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Skill != out[j].Skill {
			return out[i].Skill < out[j].Skill
		}
		return out[i].Action < out[j].Action
	})
	return out
}

// Aliases returns alias → skill pairs.
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}
