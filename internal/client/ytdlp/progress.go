package ytdlp

//go:generate $MOCKGEN -source=progress.go -destination=mocks/progress_mock.go

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const (
	// progressBarThrottle limits how often the bar is redrawn.
	progressBarThrottle = 65 * time.Millisecond
	// progressBarDescriptionLength is the maximum number of runes shown as the bar description.
	progressBarDescriptionLength = 40
	// unknownProgressTotal switches the bar into spinner mode.
	unknownProgressTotal = -1
)

// ProgressReporter renders download progress.
type ProgressReporter interface {
	// Update reports a progress snapshot.
	Update(event ProgressEvent)
	// Finish completes the current bar, if any.
	Finish()
}

// BarProgressReporter renders one progress bar per downloaded stream.
type BarProgressReporter struct {
	// out is where bars are drawn.
	out io.Writer
	// mutex protects the fields below, yt-dlp callbacks arrive from a reader goroutine.
	mutex sync.Mutex
	// bar is the bar of the stream currently downloading.
	bar *progressbar.ProgressBar
	// title is the title of the stream currently downloading.
	title string
	// lastDownloaded is the last downloaded byte count seen for the current bar.
	lastDownloaded int64
}

// NoopProgressReporter discards progress updates.
type NoopProgressReporter struct{}

// NewBarProgressReporter creates a reporter drawing bars into out.
func NewBarProgressReporter(out io.Writer) ProgressReporter {
	return &BarProgressReporter{out: out}
}

// IsTerminal reports whether the file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit into int.
}

// Update reports a progress snapshot.
func (r *BarProgressReporter) Update(event ProgressEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// A new title or a restarted counter means yt-dlp moved on to the next stream.
	if r.bar == nil || event.Title != r.title || event.DownloadedBytes < r.lastDownloaded {
		r.finishLocked()
		r.bar = r.newBar(event)
		r.title = event.Title
	}

	if event.TotalBytes > 0 && r.bar.GetMax64() != event.TotalBytes {
		r.bar.ChangeMax64(event.TotalBytes)
	}

	_ = r.bar.Set64(event.DownloadedBytes)
	r.lastDownloaded = event.DownloadedBytes
}

// Finish completes the current bar, if any.
func (r *BarProgressReporter) Finish() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.finishLocked()
}

func (r *BarProgressReporter) finishLocked() {
	if r.bar == nil {
		return
	}

	_ = r.bar.Finish()

	r.bar = nil
	r.title = ""
	r.lastDownloaded = 0
}

func (r *BarProgressReporter) newBar(event ProgressEvent) *progressbar.ProgressBar {
	total := event.TotalBytes
	if total <= 0 {
		total = unknownProgressTotal
	}

	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(shortenDescription(event.Title)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(progressBarThrottle),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(r.out, "\n")
		}),
	)
}

// Update discards the snapshot.
func (NoopProgressReporter) Update(ProgressEvent) {}

// Finish does nothing.
func (NoopProgressReporter) Finish() {}

func shortenDescription(title string) string {
	if title == "" {
		return "Downloading"
	}

	runes := []rune(title)
	if len(runes) <= progressBarDescriptionLength {
		return title
	}

	return string(runes[:progressBarDescriptionLength-1]) + "…"
}
