// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package ratelimit

import "time"

// SetClock replaces the limiter's time source. Test hook only.
func SetClock(l *Limiter, now func() time.Time) {
	l.now = now
}
