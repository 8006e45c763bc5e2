package chrome

import "sync"

// Panel classes. The stylesheet maps them to scale(1, 1) and scale(0, 0).
const (
	ClassScaleFull = "scale-full"
	ClassScaleZero = "scale-zero"
)

// PanelClasses are the classes for the creation panel and its overlay.
type PanelClasses struct {
	Panel   string
	Overlay string
}

// Panel is the visibility flag of the task-creation panel.
// The zero value is a closed panel.
type Panel struct {
	mu   sync.Mutex
	open bool
}

func (p *Panel) Show() { p.set(true) }
func (p *Panel) Hide() { p.set(false) }

// Toggle flips the panel and returns the new state.
func (p *Panel) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
	return p.open
}

// Open reports whether the panel is shown.
func (p *Panel) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Classes returns the panel and overlay classes; both scale together.
func (p *Panel) Classes() PanelClasses {
	c := ClassScaleZero
	if p.Open() {
		c = ClassScaleFull
	}
	return PanelClasses{Panel: c, Overlay: c}
}

func (p *Panel) set(open bool) {
	p.mu.Lock()
	p.open = open
	p.mu.Unlock()
}
