// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// NewHandler creates a terminal handler, or a JSON one if asJSON is set.
// Terminal output is colored when w is a tty. Records below level are
// dropped, and level may be changed while the handler is in use.
func NewHandler(w io.Writer, level *slog.LevelVar, asJSON bool) slog.Handler {
	var inner slog.Handler
	if asJSON {
		inner = ethlog.JSONHandlerWithLevel(w, LevelTrace)
	} else {
		useColor := false
		if f, ok := w.(*os.File); ok {
			useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		inner = ethlog.NewTerminalHandlerWithLevel(w, LevelTrace, useColor)
	}
	return &levelHandler{inner: inner, level: level}
}

// levelHandler filters records against a LevelVar. Groups are flattened into
// dotted keys since the terminal handler has no notion of groups.
type levelHandler struct {
	inner slog.Handler
	level *slog.LevelVar
	group string
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.group == "" {
		return h.inner.Handle(ctx, r)
	}
	grouped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		grouped.AddAttrs(qualify(h.group, a))
		return true
	})
	return h.inner.Handle(ctx, grouped)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	qualified := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		qualified = append(qualified, qualify(h.group, a))
	}
	return &levelHandler{inner: h.inner.WithAttrs(qualified), level: h.level, group: h.group}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &levelHandler{inner: h.inner, level: h.level, group: qualifyKey(h.group, name)}
}

func qualify(group string, a slog.Attr) slog.Attr {
	return slog.Attr{Key: qualifyKey(group, a.Key), Value: a.Value}
}

func qualifyKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
