// Package headless implements port.SurfaceHost in memory. It backs the
// terminal shell and the compositor tests: regions are tracked with their
// bounds, loads and injected presentation state, and navigations can be
// simulated.
package headless

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
)

// ErrUnknownRegion is returned for operations on a region that does not exist.
var ErrUnknownRegion = errors.New("unknown region")

// Region is a snapshot of a host region.
type Region struct {
	ID        entity.RegionID
	Spec      port.RegionSpec
	Attached  bool
	Bounds    entity.Rect
	URL       string
	Loads     []string
	UserAgent string
	CSS       []string
	Hooked    bool
}

type region struct {
	Region
	handler port.NavigationHandler
}

// Host is an in-memory platform window.
type Host struct {
	mu        sync.Mutex
	window    *entity.Size
	regions   map[entity.RegionID]*region
	order     []entity.RegionID
	created   int
	destroyed int
	failNext  map[string]error
	commit    port.CommitHandler
}

var _ port.SurfaceHost = (*Host)(nil)

// New returns a Host with a main window of the given size.
func New(size entity.Size) *Host {
	h := NewWithoutWindow()
	h.window = &size
	return h
}

// NewWithoutWindow returns a Host whose main window is not available.
func NewWithoutWindow() *Host {
	return &Host{
		regions:  make(map[entity.RegionID]*region),
		failNext: make(map[string]error),
	}
}

// SetWindowSize opens or resizes the main window.
func (h *Host) SetWindowSize(size entity.Size) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window = &size
}

// CloseWindow drops the main window reference.
func (h *Host) CloseWindow() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window = nil
}

// FailNext makes the next call of op ("create", "attach", "bounds", "load",
// ...) return err.
func (h *Host) FailNext(op string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failNext[op] = err
}

func (h *Host) takeFailure(op string) error {
	if err, ok := h.failNext[op]; ok {
		delete(h.failNext, op)
		return err
	}
	return nil
}

func (h *Host) WindowAvailable() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.window != nil
}

func (h *Host) WindowSize() entity.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.window == nil {
		return entity.Size{}
	}
	return *h.window
}

func (h *Host) CreateRegion(_ context.Context, spec port.RegionSpec) (entity.RegionID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.takeFailure("create"); err != nil {
		return "", err
	}
	id := entity.RegionID(fmt.Sprintf("%s-%s", spec.Kind, uuid.NewString()[:8]))
	h.regions[id] = &region{Region: Region{ID: id, Spec: spec}}
	h.order = append(h.order, id)
	h.created++
	return id, nil
}

func (h *Host) lookup(id entity.RegionID) (*region, error) {
	r, ok := h.regions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, id)
	}
	return r, nil
}

func (h *Host) Attach(_ context.Context, id entity.RegionID) error {
	return h.mutate("attach", id, func(r *region) { r.Attached = true })
}

func (h *Host) Detach(_ context.Context, id entity.RegionID) error {
	return h.mutate("detach", id, func(r *region) { r.Attached = false })
}

func (h *Host) Destroy(_ context.Context, id entity.RegionID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.takeFailure("destroy"); err != nil {
		return err
	}
	if _, err := h.lookup(id); err != nil {
		return err
	}
	delete(h.regions, id)
	for i, existing := range h.order {
		if existing == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.destroyed++
	return nil
}

func (h *Host) SetBounds(_ context.Context, id entity.RegionID, bounds entity.Rect) error {
	return h.mutate("bounds", id, func(r *region) { r.Bounds = bounds })
}

func (h *Host) LoadURL(_ context.Context, id entity.RegionID, url string) error {
	return h.mutate("load", id, func(r *region) {
		r.URL = url
		r.Loads = append(r.Loads, url)
	})
}

func (h *Host) SetUserAgent(_ context.Context, id entity.RegionID, userAgent string) error {
	return h.mutate("useragent", id, func(r *region) { r.UserAgent = userAgent })
}

func (h *Host) InjectCSS(_ context.Context, id entity.RegionID, css string) error {
	return h.mutate("css", id, func(r *region) { r.CSS = append(r.CSS, css) })
}

func (h *Host) SetNavigationHandler(id entity.RegionID, handler port.NavigationHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.regions[id]; ok {
		r.handler = handler
		r.Hooked = handler != nil
	}
}

func (h *Host) SetCommitHandler(handler port.CommitHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commit = handler
}

func (h *Host) mutate(op string, id entity.RegionID, apply func(*region)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.takeFailure(op); err != nil {
		return err
	}
	r, err := h.lookup(id)
	if err != nil {
		return err
	}
	apply(r)
	return nil
}

// SimulateNavigation reports a navigation attempt on the content region for
// role, as a link click (newWindow false) or a popup request. When the hook
// allows it, or no hook is armed, the region loads the target in place.
func (h *Host) SimulateNavigation(role entity.Role, target string, newWindow bool) (port.NavigationVerdict, error) {
	h.mu.Lock()
	r := h.contentByRole(role)
	if r == nil {
		h.mu.Unlock()
		return port.NavigationAllow, fmt.Errorf("%w: no %s surface", ErrUnknownRegion, role)
	}
	handler := r.handler
	req := port.NavigationRequest{
		Region:     r.ID,
		CurrentURL: r.URL,
		TargetURL:  target,
		NewWindow:  newWindow,
	}
	h.mu.Unlock()

	verdict := port.NavigationAllow
	if handler != nil {
		verdict = handler(req)
	}
	if verdict == port.NavigationAllow && !newWindow {
		h.mu.Lock()
		current, ok := h.regions[req.Region]
		if ok {
			current.URL = target
			current.Loads = append(current.Loads, target)
		}
		commit := h.commit
		h.mu.Unlock()
		if ok && commit != nil {
			commit(req.Region, target)
		}
	}
	return verdict, nil
}

func (h *Host) contentByRole(role entity.Role) *region {
	for _, id := range h.order {
		r := h.regions[id]
		if r.Spec.Kind == port.RegionContent && r.Spec.Role == role {
			return r
		}
	}
	return nil
}

func snapshot(r *region) Region {
	out := r.Region
	out.Loads = append([]string(nil), r.Loads...)
	out.CSS = append([]string(nil), r.CSS...)
	return out
}

// Content returns the content region for role.
func (h *Host) Content(role entity.Role) (Region, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r := h.contentByRole(role); r != nil {
		return snapshot(r), true
	}
	return Region{}, false
}

// Overlay returns the overlay region masking role.
func (h *Host) Overlay(role entity.Role) (Region, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range h.order {
		r := h.regions[id]
		if r.Spec.Kind == port.RegionOverlay && r.Spec.Role == role {
			return snapshot(r), true
		}
	}
	return Region{}, false
}

// Regions returns every live region in creation order.
func (h *Host) Regions() []Region {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Region, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, snapshot(h.regions[id]))
	}
	return out
}

// Counts returns how many regions were ever created and destroyed.
func (h *Host) Counts() (created, destroyed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created, h.destroyed
}
