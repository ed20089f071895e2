package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// UsageLine is reported when fewer than two tokens are given.
const UsageLine = "Usage: skillbridge <skill> <action> [args...]"

// ErrUsage is returned by ParseInvocation for a short argument vector.
var ErrUsage = errors.New(UsageLine)

// Invocation is the parsed argument vector for one run.
type Invocation struct {
	Skill  string
	Action string
	Args   []string
}

// ParseInvocation splits argv (without the program name) into skill, action
// and positional arguments.
func ParseInvocation(argv []string) (Invocation, error) {
	if len(argv) < 2 {
		return Invocation{}, ErrUsage
	}
	args := make([]string, len(argv)-2)
	copy(args, argv[2:])
	return Invocation{Skill: argv[0], Action: argv[1], Args: args}, nil
}

// Dispatcher resolves an argument vector to one route and runs it.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch returns the envelope for argv. It either runs exactly one handler
// or reports a usage/routing failure without running any.
func (d *Dispatcher) Dispatch(ctx context.Context, argv []string) Envelope {
	inv, err := ParseInvocation(argv)
	if err != nil {
		return Failure(err.Error())
	}
	rt, err := d.registry.Lookup(inv.Skill, inv.Action)
	if err != nil {
		log.Debug().Str("skill", inv.Skill).Str("action", inv.Action).Msg("no route")
		return Failure(err.Error())
	}
	if len(inv.Args) < rt.MinArgs {
		return Failure(rt.Usage)
	}
	return d.invoke(ctx, rt, inv)
}

// invoke runs the handler behind a boundary that turns errors and panics into
// a labelled failure envelope.
func (d *Dispatcher) invoke(ctx context.Context, rt Route, inv Invocation) (env Envelope) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("skill", rt.Skill).Str("action", rt.Action).Msg("handler panicked")
			env = Failure(rt.Label + fmt.Sprint(p))
		}
		log.Debug().
			Str("skill", inv.Skill).
			Str("action", inv.Action).
			Bool("success", env.Success).
			Dur("elapsed", time.Since(start)).
			Msg("handler finished")
	}()

	data, err := rt.Handler(ctx, inv.Args)
	if err != nil {
		log.Debug().Err(err).Str("skill", inv.Skill).Str("action", inv.Action).Msg("handler failed")
		return Failure(rt.Label + err.Error())
	}
	return Success(data)
}
