package worker

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/movesync/oerror"
	"github.com/sirupsen/logrus"
)

// Go runs f on a new goroutine. A panic in f is recovered and reported to sentry under the given
// name. done, if non-nil, is called once f returns or panics.
func Go(name string, log *logrus.Logger, f func(), done func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				if log != nil {
					log.Errorf("%s crashed: %v", name, err)
				}
				hub := sentry.CurrentHub().Clone()
				hub.ConfigureScope(func(scope *sentry.Scope) {
					scope.SetTag("worker", name)
				})
				hub.Recover(oerror.New("%s crashed: %v", name, err))
				hub.Flush(time.Second * 5)
			}
			if done != nil {
				done()
			}
		}()
		f()
	}()
}
