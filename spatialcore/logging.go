package spatialcore

import "go.uber.org/zap"

// logger backs the package's few unconditional diagnostics (resolution
// fallback, catalog merge). Hosts that want these surfaced through their
// own pipeline should call SetLogger; by default nothing is emitted.
var logger *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger installs l as the destination for spatialcore's internal
// diagnostics. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}
