package progress

// Effects is the presentation adapter for reward signals. The store never
// touches a rendering primitive; whoever drives the UI decides what a pulse
// or a sticky all-done looks like.
type Effects interface {
	// CategoryPulse fires when one category completes but not all four.
	// Presentations clear it themselves after the configured pulse delay.
	CategoryPulse(category string)
	// AllDone fires when all four main categories are complete. Sticky:
	// stays on until AllDoneCleared.
	AllDone()
	// AllDoneCleared fires when a reset regresses a previously all-done day.
	AllDoneCleared()
}

type NopEffects struct{}

func (NopEffects) CategoryPulse(string) {}
func (NopEffects) AllDone()             {}
func (NopEffects) AllDoneCleared()      {}
