// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"hdmerge/config"
	"hdmerge/mobi"
	"hdmerge/utils/images"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by merge subcommand
	NoDirs    bool
	Overwrite bool
	CodePage  encoding.Encoding
	// Sidecar when set is used for every book instead of looking for one
	Sidecar string

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// MergeOptions translates configuration into merge engine options.
func (e *LocalEnv) MergeOptions() []mobi.Option {
	if e.Cfg == nil || !e.Cfg.Merge.VerifyImages {
		return nil
	}
	return []mobi.Option{mobi.WithVerify(verifyImage)}
}

// verifyImage accepts resource only if its image header could be decoded.
func verifyImage(data []byte) error {
	_, err := images.Probe(data)
	return err
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
