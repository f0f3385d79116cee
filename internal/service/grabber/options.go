package grabber

import (
	"path/filepath"
	"strconv"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	"github.com/oshokin/tube-grabber/internal/config"
)

const (
	// mp4MergeFormat is the container video and audio streams are merged into.
	mp4MergeFormat = "mp4"
	// mp3AudioFormat is the codec audio is extracted to.
	mp3AudioFormat = "mp3"
	// mp3FormatSelector picks the best audio-only stream, or the best combined one.
	mp3FormatSelector = "bestaudio/best"
)

// mp4FormatSelector returns the format selector for MP4 downloads capped at maxHeight.
func mp4FormatSelector(maxHeight int64) string {
	height := strconv.FormatInt(maxHeight, 10)

	return "bestvideo[height<=" + height + "]+bestaudio/best[height<=" + height + "]"
}

// audioQuality returns the audio quality argument for the bitrate, e.g. "192K".
func audioQuality(bitrateKbps int64) string {
	return strconv.FormatInt(bitrateKbps, 10) + "K"
}

// BuildDownloadOptions translates a download request into yt-dlp options.
func BuildDownloadOptions(cfg *config.Config, req *DownloadRequest, ffmpegLocation string) *ytdlp.DownloadOptions {
	opts := &ytdlp.DownloadOptions{
		URL:               req.URL,
		OutputTemplate:    filepath.Join(req.OutputPath, cfg.FilenameTemplate),
		NoPlaylist:        req.Scope != DownloadScopePlaylist,
		FFmpegLocation:    ffmpegLocation,
		LimitRate:         cfg.ParsedDownloadSpeedLimit,
		RestrictFilenames: cfg.RestrictFilenames,
		ShowProgress:      cfg.ShowProgress,
	}

	switch req.Format {
	case MediaFormatMP3:
		opts.Format = mp3FormatSelector
		opts.ExtractAudio = true
		opts.AudioFormat = mp3AudioFormat
		opts.AudioQuality = audioQuality(cfg.AudioBitrateKbps)
	default:
		opts.Format = mp4FormatSelector(cfg.MaxVideoHeight)
		opts.MergeOutputFormat = mp4MergeFormat
	}

	return opts
}
