package composer

import "sync"

// passState carries the flags every pass shares: label, enabled, screen routing,
// and whether the last render produced content requiring a buffer swap. Passes
// embed it and implement Render and SetSize themselves.
type passState struct {
	stateMu sync.Mutex

	label          string
	enabled        bool
	renderToScreen bool
	needsSwap      bool
}

func (p *passState) Label() string {
	return p.label
}

func (p *passState) Enabled() bool {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.enabled
}

func (p *passState) SetEnabled(enabled bool) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.enabled = enabled
}

func (p *passState) NeedsSwap() bool {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.needsSwap
}

func (p *passState) setNeedsSwap(needsSwap bool) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.needsSwap = needsSwap
}

func (p *passState) RenderToScreen() bool {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.renderToScreen
}

func (p *passState) SetRenderToScreen(enabled bool) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.renderToScreen = enabled
}
