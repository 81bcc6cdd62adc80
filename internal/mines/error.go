package mines

import "fmt"

// AssertionError reports a broken engine invariant. It is raised with panic
// and never returned for ordinary player mistakes.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

var (
	ErrOutOfBounds       = fmt.Errorf("cell is out of bounds")
	ErrBlocked           = fmt.Errorf("cell is flagged or already revealed")
	ErrRevealed          = fmt.Errorf("cell is already revealed")
	ErrGameOver          = fmt.Errorf("game is over")
	ErrAlreadyStarted    = fmt.Errorf("first click was already made")
	ErrInvalidDimensions = fmt.Errorf("width and height must be positive")
	ErrInvalidMineCount  = fmt.Errorf("mine count must be between 0 and the number of cells")
	ErrTooManyMines      = fmt.Errorf("too many mines to keep the first click safe")
)

// recoverAssertion turns an [AssertionError] panic into err. Any other panic
// is re-raised.
func recoverAssertion(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ae, ok := r.(AssertionError); ok {
		Log.WithField("error", ae.message).Error("engine assertion failed")
		*err = ae
		return
	}
	panic(r)
}
