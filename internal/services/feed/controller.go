package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"launchlist/internal/domain/page"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Source fetches one page of items from the remote collection.
type Source[T Item] interface {
	FetchPage(ctx context.Context, req page.Request) (page.Result[T], error)
}

// Options tunes a Controller. Zero values pick the defaults.
type Options[T Item] struct {
	Name           string // used in logs
	PageSize       int
	Sort           page.Sort
	LoadMoreDelay  time.Duration
	SearchDebounce time.Duration
	Observer       Observer[T]
}

const (
	DefaultLoadMoreDelay  = 250 * time.Millisecond
	DefaultSearchDebounce = 500 * time.Millisecond
)

// Controller drives an incrementally loaded, searchable list backed by a
// paginated Source.
//
// All list state belongs to a single loop goroutine. Public methods only
// enqueue intents and return immediately; fetch results and timer firings
// are fed back into the same loop, so state never needs a lock. At most one
// page request is in flight: an intent that arrives while the controller is
// busy is dropped, not queued.
//
// Search filters only the items already loaded; it never queries the
// server for more matches.
type Controller[T Item] struct {
	src  Source[T]
	opts Options[T]
	obs  Observer[T]
	log  zerolog.Logger

	msgs      chan func()
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	// loop-owned
	state      State[T]
	reqSeq     uint64 // tag of the request in flight, 0 when none
	lastSeq    uint64
	loadMore   task
	searchWait task
}

// New creates a controller and starts its loop. Call Close to stop it.
func New[T Item](src Source[T], opts Options[T]) *Controller[T] {
	if opts.PageSize < 1 {
		opts.PageSize = page.DefaultLimit
	}
	if len(opts.Sort) == 0 {
		opts.Sort = page.DefaultSort()
	}
	if opts.LoadMoreDelay == 0 {
		opts.LoadMoreDelay = DefaultLoadMoreDelay
	}
	if opts.SearchDebounce == 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	if opts.Name == "" {
		opts.Name = "feed"
	}
	var obs Observer[T] = nopObserver[T]{}
	if opts.Observer != nil {
		obs = opts.Observer
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T]{
		src:    src,
		opts:   opts,
		obs:    obs,
		log:    log.With().Str("feed", opts.Name).Logger(),
		msgs:   make(chan func(), 32),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.state = State[T]{Items: []T{}, Pagination: c.firstPage()}

	go c.run()
	return c
}

func (c *Controller[T]) run() {
	defer close(c.done)
	for {
		select {
		case <-c.ctx.Done():
			c.loadMore.cancel()
			c.searchWait.cancel()
			c.reqSeq = 0
			c.log.Debug().Msg("feed loop stopped")
			return
		case fn := <-c.msgs:
			fn()
		}
	}
}

// enqueue hands fn to the loop. It reports false once the controller is
// closed. Never call it from the loop itself.
func (c *Controller[T]) enqueue(fn func()) bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
	}
	select {
	case c.msgs <- fn:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// LoadInitial clears the search, fetches the first page and replaces the
// list with it.
func (c *Controller[T]) LoadInitial() { c.enqueue(c.loadInitial) }

// LoadMore fetches the next page and appends it, if there is one.
func (c *Controller[T]) LoadMore() { c.enqueue(c.startLoadMore) }

// Refresh clears the search and reloads the first page.
func (c *Controller[T]) Refresh() { c.enqueue(c.refresh) }

// Search records query and, after the debounce window, filters the loaded
// items by it. A blank query reloads the first page from the server.
func (c *Controller[T]) Search(query string) {
	c.enqueue(func() { c.search(query) })
}

// State returns a snapshot of the list. After Close it returns the final
// state.
func (c *Controller[T]) State() State[T] {
	reply := make(chan State[T], 1)
	if c.enqueue(func() { reply <- c.state.clone() }) {
		select {
		case s := <-reply:
			return s
		case <-c.done:
		}
	}
	<-c.done
	return c.state.clone()
}

// Close stops the loop, abandons any in-flight request and cancels pending
// timers. It is safe to call more than once.
func (c *Controller[T]) Close() {
	c.closeOnce.Do(c.cancel)
	<-c.done
}

// Done is closed once the controller has stopped.
func (c *Controller[T]) Done() <-chan struct{} { return c.done }

func (c *Controller[T]) firstPage() page.Pagination {
	p := page.Terminal(c.opts.PageSize)
	p.Sort = c.opts.Sort
	return p
}

func (c *Controller[T]) idle() bool {
	return c.state.Status == StatusIdle && c.reqSeq == 0
}

func (c *Controller[T]) loadInitial() {
	if !c.idle() {
		c.log.Debug().Stringer("status", c.state.Status).Msg("initial load dropped: busy")
		return
	}
	// a reload starts from an unfiltered first page
	c.searchWait.cancel()
	c.state.SearchQuery = ""
	c.state.Status = StatusLoadingInitial
	c.fetch(c.firstRequest())
}

func (c *Controller[T]) refresh() {
	if !c.idle() {
		c.log.Debug().Stringer("status", c.state.Status).Msg("refresh dropped: busy")
		return
	}
	c.searchWait.cancel()
	c.state.SearchQuery = ""
	c.state.Pagination = c.firstPage()
	c.state.Status = StatusRefreshing
	c.fetch(c.firstRequest())
}

func (c *Controller[T]) startLoadMore() {
	if !c.idle() || !c.state.Pagination.HasNextPage {
		return
	}
	if len(c.state.Items) == 0 {
		// nothing to continue from
		c.state.Pagination = c.firstPage()
		c.publish()
		return
	}

	c.state.Status = StatusLoadingMore
	c.publish()
	c.loadMore.schedule(c.opts.LoadMoreDelay, func(seq uint64) {
		c.enqueue(func() { c.fireLoadMore(seq) })
	})
}

func (c *Controller[T]) fireLoadMore(seq uint64) {
	if !c.loadMore.current(seq) || c.state.Status != StatusLoadingMore {
		return
	}
	c.fetch(c.state.Pagination.Next())
}

func (c *Controller[T]) search(query string) {
	c.state.SearchQuery = query
	c.publish()
	c.searchWait.schedule(c.opts.SearchDebounce, func(seq uint64) {
		c.enqueue(func() { c.fireSearch(seq, query) })
	})
}

func (c *Controller[T]) fireSearch(seq uint64, query string) {
	if !c.searchWait.current(seq) {
		return
	}
	if strings.TrimSpace(query) == "" {
		c.loadInitial()
		return
	}

	filtered := Filter(c.state.Items, query)
	c.log.Debug().Str("query", query).Int("matches", len(filtered)).Int("loaded", len(c.state.Items)).Msg("search filtered loaded items")

	if !c.idle() {
		c.state.Items = filtered
		c.publish()
		return
	}
	// the spinner contract: a search shows as an initial load, however brief
	c.state.Status = StatusLoadingInitial
	c.publish()
	c.state.Items = filtered
	c.state.Status = StatusIdle
	c.publish()
}

func (c *Controller[T]) firstRequest() page.Request {
	return page.Request{Page: 1, Limit: c.opts.PageSize, Sort: c.opts.Sort}.Normalize()
}

// fetch issues req on a helper goroutine and tags it so that a response
// arriving after a reset or Close is discarded.
func (c *Controller[T]) fetch(req page.Request) {
	c.lastSeq++
	seq := c.lastSeq
	c.reqSeq = seq
	c.state.InFlight = true
	c.publish()

	kind := c.state.Status
	c.log.Debug().Stringer("status", kind).Int("page", req.Page).Int("limit", req.Limit).Msg("fetching page")

	go func() {
		start := time.Now()
		res, err := c.src.FetchPage(c.ctx, req)
		took := time.Since(start)
		c.enqueue(func() { c.finish(seq, kind, req, res, err, took) })
	}()
}

func (c *Controller[T]) finish(seq uint64, kind Status, req page.Request, res page.Result[T], err error, took time.Duration) {
	if seq != c.reqSeq {
		c.log.Debug().Uint64("seq", seq).Msg("stale page response discarded")
		return
	}
	c.reqSeq = 0
	c.state.InFlight = false

	switch {
	case err != nil && kind == StatusLoadingMore:
		c.log.Warn().Err(err).Int("page", req.Page).Dur("took", took).Msg("load more failed")
		c.notify("load_more")
	case err != nil:
		c.log.Warn().Err(err).Stringer("status", kind).Dur("took", took).Msg("page load failed")
		c.state.Items = []T{}
		c.state.Pagination = c.firstPage()
		c.notify(opName(kind))
	case kind == StatusLoadingMore:
		c.state.Items = Merge(c.state.Items, res.Items)
		c.state.Pagination = page.FromResult(req, res)
		c.log.Debug().Int("page", res.Page).Int("received", len(res.Items)).Int("total", len(c.state.Items)).Dur("took", took).Msg("page appended")
	default:
		c.state.Items = Dedupe(res.Items)
		c.state.Pagination = page.FromResult(req, res)
		c.log.Debug().Int("page", res.Page).Int("received", len(res.Items)).Dur("took", took).Msg("list replaced")
	}

	c.state.Status = StatusIdle
	c.publish()
}

func (c *Controller[T]) publish() {
	c.obs.StateChanged(c.state.clone())
}

func (c *Controller[T]) notify(op string) {
	c.obs.Notify(Notice{Message: FetchFailedMessage, Op: op, At: time.Now()})
}

func opName(kind Status) string {
	switch kind {
	case StatusRefreshing:
		return "refresh"
	case StatusLoadingMore:
		return "load_more"
	default:
		return "load_initial"
	}
}
