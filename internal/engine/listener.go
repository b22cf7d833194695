package engine

// Listener is notified about changes a front end needs to redraw.
type Listener interface {
	// PileChanged is called after an UpdateStack move touches a pile.
	// full is false for text-only updates.
	PileChanged(p *Pile, full bool)
	StuckChanged(stuck bool)
	GameWon()
}

// Animator plays card movement. The default does nothing.
type Animator interface {
	AnimateMove(from, to *Pile, n, frames, shadow int)
}

type nopListener struct{}

func (nopListener) PileChanged(*Pile, bool) {}
func (nopListener) StuckChanged(bool)       {}
func (nopListener) GameWon()                {}

type nopAnimator struct{}

func (nopAnimator) AnimateMove(*Pile, *Pile, int, int, int) {}
