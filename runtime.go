package webapp

import (
	"net/http"
	"sync"

	"github.com/grindlemire/go-webapp/internal/debug"
)

// Runtime builds element trees on a Backend and owns everything they share:
// the cell arena, id allocator, event bus, timers and the update queue.
type Runtime struct {
	backend  Backend
	graph    *Graph
	ids      *IDAllocator
	bus      *Bus
	log      *debug.Logger
	sched    Scheduler
	loader   *Loader
	resolver Resolver
	cfg      Config

	// Update queue (timers and background completions land here)
	queue    chan func()
	stopCh   chan struct{}
	stopOnce sync.Once

	root        *Element
	resize      *Debouncer
	diagnostics []*CycleReport
}

// New creates a runtime drawing on backend.
func New(backend Backend, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		backend:  backend,
		cfg:      DefaultConfig(),
		resolver: ResolveElement,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.log == nil {
		r.log = debug.Discard()
	}
	if r.ids == nil {
		r.ids = NewIDAllocator()
	}
	if r.bus == nil {
		r.bus = NewBus()
	}
	if r.cfg.QueueSize < 1 {
		r.cfg.QueueSize = 1
	}
	r.queue = make(chan func(), r.cfg.QueueSize)
	if r.sched == nil {
		r.sched = timerScheduler{post: r.Post}
	}
	if r.loader == nil {
		r.loader = NewLoader(r.cfg.ResourceBaseURL, &http.Client{Timeout: r.cfg.FetchTimeout})
	}
	r.graph = NewGraph(r.ids, r.log)
	return r, nil
}

// NewFromEnv creates a runtime configured from WEBAPP_* environment
// variables, logging to WEBAPP_DEBUG when set.
func NewFromEnv(backend Backend, opts ...Option) (*Runtime, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := cfg.OpenLogger()
	if err != nil {
		return nil, err
	}
	return New(backend, append([]Option{WithConfig(cfg), WithLogger(log)}, opts...)...)
}

// Graph returns the cell arena.
func (r *Runtime) Graph() *Graph { return r.graph }

// Bus returns the event bus.
func (r *Runtime) Bus() *Bus { return r.bus }

// Logger returns the runtime logger.
func (r *Runtime) Logger() *debug.Logger { return r.log }

// Backend returns the backend surfaces are created on.
func (r *Runtime) Backend() Backend { return r.backend }

// Scheduler returns the timer source.
func (r *Runtime) Scheduler() Scheduler { return r.sched }

// Config returns the active configuration.
func (r *Runtime) Config() Config { return r.cfg }

// Root returns the mounted root element, or nil.
func (r *Runtime) Root() *Element { return r.root }

// Diagnostics returns the cycle reports produced so far.
func (r *Runtime) Diagnostics() []*CycleReport { return r.diagnostics }
