package imageload

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/mdinline/internal/inline"
	"git.home.luguber.info/inful/mdinline/internal/logfields"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
	"git.home.luguber.info/inful/mdinline/internal/render"
)

// Result is one completed resolution pass.
type Result struct {
	Pass   uint64
	Nodes  []inline.Node
	Images render.Images
}

// Loader runs resolution passes for a changing node sequence. Starting a
// pass cancels the one in flight; only a pass that is still the latest when
// it completes is published.
type Loader struct {
	resolver *Resolver
	publish  func(Result)

	mu     sync.Mutex
	wg     sync.WaitGroup
	pass   uint64
	key    string
	nodes  []inline.Node
	cancel context.CancelFunc
	closed bool
}

// NewLoader creates a loader. publish is called from the pass goroutine with
// the loader lock held; it must not call back into the loader.
func NewLoader(resolver *Resolver, publish func(Result)) *Loader {
	return &Loader{resolver: resolver, publish: publish}
}

// Update starts a pass for nodes unless the latest pass already has equal
// input. It reports whether a pass was started.
func (l *Loader) Update(ctx context.Context, nodes []inline.Node) bool {
	key := inline.KeyNodes(nodes)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || (l.pass > 0 && key == l.key) {
		return false
	}
	l.start(ctx, key, nodes)
	return true
}

// Refresh starts a new pass for the current input, superseding any pass in
// flight. It does nothing before the first Update.
func (l *Loader) Refresh(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.pass == 0 {
		return false
	}
	l.start(ctx, l.key, l.nodes)
	return true
}

// start must be called with l.mu held.
func (l *Loader) start(ctx context.Context, key string, nodes []inline.Node) {
	if l.cancel != nil {
		l.cancel()
	}
	l.pass++
	l.key = key
	l.nodes = nodes

	passCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	go l.run(passCtx, cancel, l.pass, nodes)
}

func (l *Loader) run(ctx context.Context, cancel context.CancelFunc, pass uint64, nodes []inline.Node) {
	defer l.wg.Done()
	defer cancel()

	images, err := l.resolver.Resolve(ctx, nodes)

	l.mu.Lock()
	defer l.mu.Unlock()
	current := pass == l.pass && !l.closed
	switch {
	case err != nil && !current:
		l.resolver.recorder.IncPassOutcome(metrics.PassSuperseded)
		l.resolver.logger.Debug("Resolution pass superseded", logfields.Pass(pass))
	case err != nil:
		l.resolver.recorder.IncPassOutcome(metrics.PassCanceled)
		l.resolver.logger.Debug("Resolution pass canceled", logfields.Pass(pass), logfields.Error(err))
	case !current:
		// Finished before noticing it was superseded.
		l.resolver.recorder.IncPassOutcome(metrics.PassSuperseded)
	default:
		l.resolver.recorder.IncPassOutcome(metrics.PassPublished)
		if l.publish != nil {
			l.publish(Result{Pass: pass, Nodes: nodes, Images: images})
		}
	}
}

// Wait blocks until every started pass has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels the pass in flight and waits for it. Later updates are
// ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
