package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// interstitialProbeTimeout bounds the element lookup after the fixed wait.
// The wait already gave the prompt time to render, so the probe itself
// should resolve quickly.
const interstitialProbeTimeout = 500 * time.Millisecond

// interstitialSelector matches the kinds of affordances the prompt uses.
const interstitialSelector = `button, input[type="submit"], a`

// dismissInterstitial handles the optional "Continue shopping" prompt some
// storefronts show before the home page fully loads. It waits a fixed delay
// for the prompt to render, clicks it if visible, and reports whether it did.
//
// Best-effort by design: the prompt being absent is the common case, so
// nothing in here ever propagates. Expected misses (timeout, not visible)
// log at debug; anything else logs at warn so it stays observable.
func (s *Scraper) dismissInterstitial(p *rod.Page) bool {
	select {
	case <-time.After(s.checkCfg.InterstitialWait):
	case <-p.GetContext().Done():
		return false
	}

	el, err := p.Timeout(interstitialProbeTimeout).ElementR(interstitialSelector, s.selectors.InterstitialText)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			slog.Debug("interstitial: prompt not present")
		} else {
			slog.Warn("interstitial: probe failed", "error", err)
		}
		return false
	}

	visible, err := el.Visible()
	if err != nil {
		slog.Warn("interstitial: visibility check failed", "error", err)
		return false
	}
	if !visible {
		slog.Debug("interstitial: prompt found but not visible")
		return false
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		slog.Warn("interstitial: click failed", "error", err)
		return false
	}

	slog.Info("interstitial dismissed", "text", s.selectors.InterstitialText)
	return true
}
