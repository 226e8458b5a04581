// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import "go.uber.org/zap"

// pkglog is the package-wide logger used for GC and resize diagnostics. It
// defaults to zap's no-op logger so that importing this package never
// produces output by itself; embedders call SetLogger to opt in, mirroring
// the teacher's build-tag-gated _LOGLEVEL traces but as leveled structured
// fields instead of fmt.Printf-style text.
var pkglog = zap.NewNop()

// SetLogger installs the *zap.Logger used for internal diagnostics (node
// table resize, garbage collection, factory construction). Passing nil restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		pkglog = zap.NewNop()
		return
	}
	pkglog = l
}
