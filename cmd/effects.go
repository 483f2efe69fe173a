package cmd

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// cliEffects is the terminal presentation adapter for reward signals. The
// single-category pulse is transient by nature here (a one-shot line plus a
// notification); the all-done state is sticky and re-derivable from the day
// state, so summary and today keep showing it until a reset clears it.
type cliEffects struct {
	app *app
}

func (e *cliEffects) CategoryPulse(category string) {
	label := e.app.T(category, category)
	fmt.Println(e.app.T("category_done", "Category complete:"), label)
	_ = beeep.Notify("Wird", label+" ✓", "")
}

func (e *cliEffects) AllDone() {
	msg := e.app.T("all_done", "All adhkar complete for today!")
	fmt.Println(msg)
	_ = beeep.Alert("Wird", msg, "")
}

func (e *cliEffects) AllDoneCleared() {
	fmt.Println(e.app.T("all_done_cleared", "Daily completion cleared."))
}
