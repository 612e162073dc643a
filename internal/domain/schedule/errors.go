package schedule

import "errors"

var ErrNoActiveSchedule = errors.New("no active schedule found for this date")
