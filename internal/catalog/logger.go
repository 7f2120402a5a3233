// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package catalog

import (
	"strings"

	"github.com/reelmatch/reelmatch/internal/logging"
)

// badgerLogger routes Badger's internal logging through the application
// logger. Badger is chatty at info level during compactions, so its info
// and debug output both land at debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logger := logging.Logger()
	logger.Error().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logger := logging.Logger()
	logger.Warn().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logger := logging.Logger()
	logger.Debug().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logger := logging.Logger()
	logger.Debug().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}
