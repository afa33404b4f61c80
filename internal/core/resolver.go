package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"wa-resolver/internal/ports"
	"wa-resolver/internal/types"
)

// Resolver loads getters and answers resolution requests by probing
// their registered sources in priority order until one yields a path.
// Resolution is synchronous: sources are probed one at a time and the
// first match wins, so evaluation order is deterministic.
type Resolver struct {
	matcher Matcher
	sources sourceList
	loaded  map[string]bool
	getters []ports.Getter
}

func NewResolver(info ports.ApkInfoProvider) *Resolver {
	return &Resolver{
		matcher: NewMatcher(info),
		loaded:  map[string]bool{},
	}
}

// Matcher exposes the predicate matcher sources use to test candidates.
func (r *Resolver) Matcher() Matcher {
	return r.matcher
}

// Load initializes and registers each getter once. A getter that fails
// to initialize or register aborts the load: a partially loaded source
// list is unsafe to resolve against. Getters already loaded by a
// previous call are skipped.
func (r *Resolver) Load(ctx context.Context, getters []ports.Getter) error {
	for _, getter := range getters {
		if r.loaded[getter.Name()] {
			continue
		}
		log.Ctx(ctx).Debug().Str("getter", getter.Name()).Msg("loading getter")
		if err := getter.Initialize(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("getter %s failed to initialize", getter.Name())).
				WithCause(err)
		}
		if err := getter.Register(r); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("getter %s failed to register", getter.Name())).
				WithCause(err)
		}
		r.loaded[getter.Name()] = true
		r.getters = append(r.getters, getter)
	}
	return nil
}

// Register adds a source at the given priority. Getters call this from
// their Register hook; the source's own name records the registration's
// provenance.
func (r *Resolver) Register(source ports.Source, priority types.SourcePriority) {
	log.Debug().
		Str("source", source.Name()).
		Stringer("priority", priority).
		Int("value", int(priority)).
		Msg("registering source")
	r.sources.add(source, priority)
}

// Registrations returns the registered sources in probe order.
func (r *Resolver) Registrations() []SourceRegistration {
	ordered := r.sources.ordered()
	out := make([]SourceRegistration, len(ordered))
	copy(out, ordered)
	return out
}

// Getters returns the getters loaded so far, in load order.
func (r *Resolver) Getters() []ports.Getter {
	return r.getters
}

// Resolve probes sources from highest to lowest priority and returns
// the first path a source yields. When every source comes up empty, a
// strict resolve fails with a not-found error while a non-strict one
// returns the empty path with no error. A failing source is logged and
// skipped; only exhaustion of all sources fails a resolution.
func (r *Resolver) Resolve(ctx context.Context, res types.Resource, strict bool) (string, error) {
	assert.NotEmpty(ctx, string(res.Kind()), "resource kind must be set")
	logger := log.Ctx(ctx)
	logger.Debug().Stringer("resource", res).Msg("resolving resource")
	for _, entry := range r.sources.ordered() {
		logger.Debug().Str("source", entry.Source.Name()).Msg("trying source")
		path, found, err := entry.Source.Locate(ctx, res)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("source", entry.Source.Name()).
				Msg("source failed, skipping")
			continue
		}
		if found {
			logger.Debug().
				Stringer("resource", res).
				Str("source", entry.Source.Name()).
				Str("path", path).
				Msg("resource found")
			return path, nil
		}
	}
	if strict {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s could not be found", res))
	}
	logger.Debug().Stringer("resource", res).Msg("resource not found")
	return "", nil
}
