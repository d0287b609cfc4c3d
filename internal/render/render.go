package render

import (
	"context"
	"runtime"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"rxvar/internal/trace"
	"rxvar/internal/vars"
)

// Options configures RenderAll.
type Options struct {
	// Jobs bounds concurrency; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache is optional.
	Cache *ArtifactCache
}

// Stats summarizes cache use during RenderAll.
type Stats struct {
	Hits   int
	Misses int
}

// RenderAll renders entries concurrently. Output order matches input order.
// A cache read or write failure aborts the run; the first error wins.
func RenderAll(ctx context.Context, entries []Named, opts Options) ([]Artifact, Stats, error) {
	ctx, span := trace.Start(ctx, trace.ScopePhase, "render")
	defer span.End("")

	if len(entries) == 0 {
		return nil, Stats{}, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	out := make([]Artifact, len(entries))
	var hits, misses atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(entries)))
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, hit, err := renderOne(gctx, e, opts.Cache)
			if err != nil {
				return err
			}
			if hit {
				hits.Add(1)
			} else {
				misses.Add(1)
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	st := Stats{Hits: int(hits.Load()), Misses: int(misses.Load())}
	span.WithExtra("entries", strconv.Itoa(len(entries))).
		WithExtra("cache_hits", strconv.Itoa(st.Hits))
	return out, st, nil
}

func renderOne(ctx context.Context, e Named, cache *ArtifactCache) (Artifact, bool, error) {
	_, span := trace.Start(ctx, trace.ScopeEntry, "entry:"+e.Name)
	defer span.End("")

	if e.Var == nil {
		return Artifact{}, false, &vars.VarValueError{Msg: "entry " + e.Name + " has no expression"}
	}
	key := vars.Fingerprint(e.Var)
	if a, ok, err := cache.Get(key); err != nil {
		return Artifact{}, false, err
	} else if ok {
		a.Name = e.Name
		span.WithExtra("cache", "hit")
		return a, true, nil
	}

	a := NewArtifact(e)
	if err := cache.Put(key, a); err != nil {
		return Artifact{}, false, err
	}
	return a, false, nil
}
