package feed

import "time"

// FetchFailedMessage is the user-facing text of every fetch failure notice.
const FetchFailedMessage = "failed to fetch data"

// Notice is a one-shot, dismissible message for the presentation layer.
type Notice struct {
	Message string    `json:"message"`
	Op      string    `json:"op"`
	At      time.Time `json:"at"`
}

// Observer receives controller output. Both methods run on the controller
// loop: they must return quickly and must not call back into the
// controller.
type Observer[T Item] interface {
	StateChanged(State[T])
	Notify(Notice)
}

type nopObserver[T Item] struct{}

func (nopObserver[T]) StateChanged(State[T]) {}
func (nopObserver[T]) Notify(Notice)         {}
