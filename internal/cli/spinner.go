package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// fetchStatus animates a one-line status while a remote report downloads.
// The line shows the elapsed time and, after a failed attempt, the retry
// count. It is erased when the download ends or ctx is cancelled.
type fetchStatus struct {
	w     io.Writer
	label string
	start time.Time

	mu    sync.Mutex
	retry string
	width int // visible runes on the current line

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func startFetchStatus(ctx context.Context, w io.Writer, rawURL string) *fetchStatus {
	s := &fetchStatus{
		w:       w,
		label:   "Fetching " + displayURL(rawURL),
		start:   time.Now(),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *fetchStatus) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.stop:
			s.clear()
			return
		case <-ticker.C:
			s.render(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

// retrying records a failed attempt; its signature matches Backoff.OnRetry.
func (s *fetchStatus) retrying(attempt, max int, _ time.Duration, _ error) {
	s.mu.Lock()
	s.retry = fmt.Sprintf("retry %d/%d", attempt, max)
	s.mu.Unlock()
}

func (s *fetchStatus) render(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := fmt.Sprintf("%s %s", s.label, time.Since(s.start).Round(100*time.Millisecond))
	if s.retry != "" {
		text += ", " + s.retry
	}
	width := utf8.RuneCountInString(frame) + 1 + utf8.RuneCountInString(text)
	pad := ""
	if width < s.width {
		pad = strings.Repeat(" ", s.width-width)
	}
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(text), pad)
	s.width = max(s.width, width)
}

func (s *fetchStatus) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// Stop erases the line and waits for the animation to end. Safe to call
// more than once.
func (s *fetchStatus) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.stopped
}

// displayURL shortens rawURL to host and path. The query is dropped since
// artifact URLs often carry access tokens.
func displayURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host + u.EscapedPath()
}
