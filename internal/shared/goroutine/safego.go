// Package goroutine starts goroutines whose panics are recovered and reported.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// Run starts fn in a goroutine. The returned channel receives fn's error, or
// an error describing the panic if fn panicked, and is then closed. A nil
// error is not sent.
func Run(log logger.Interface, name string, fn func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				errCh <- fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			errCh <- err
		}
	}()
	return errCh
}
