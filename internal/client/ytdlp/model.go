package ytdlp

// DownloadOptions is the configuration handed to yt-dlp for a single invocation.
type DownloadOptions struct {
	// URL is the target video or playlist URL.
	URL string
	// Format is the yt-dlp format selector.
	Format string
	// MergeOutputFormat is the container used when video and audio streams are merged.
	MergeOutputFormat string
	// ExtractAudio converts the downloaded media into an audio-only file.
	ExtractAudio bool
	// AudioFormat is the target audio codec used with ExtractAudio.
	AudioFormat string
	// AudioQuality is the target audio bitrate used with ExtractAudio (e.g., "192K").
	AudioQuality string
	// OutputTemplate is the yt-dlp output template including the directory.
	OutputTemplate string
	// NoPlaylist restricts the download to the single resolved item.
	NoPlaylist bool
	// FFmpegLocation is the path to the ffmpeg binary or its directory.
	FFmpegLocation string
	// LimitRate is the maximum download rate in bytes per second. Zero disables the limit.
	LimitRate int64
	// RestrictFilenames limits filenames to ASCII characters without spaces.
	RestrictFilenames bool
	// ShowProgress enables progress rendering.
	ShowProgress bool
}

// DownloadedItem describes a single file yt-dlp has finished.
type DownloadedItem struct {
	// Path is the final path of the file.
	Path string
	// Title is the media title.
	Title string
	// Uploader is the channel or uploader name.
	Uploader string
	// PlaylistTitle is the title of the playlist the item belongs to.
	PlaylistTitle string
	// PlaylistIndex is the 1-based position in the playlist (0 outside playlists).
	PlaylistIndex int64
	// PlaylistCount is the number of playlist entries (0 outside playlists).
	PlaylistCount int64
	// UploadDate is the upload date in yt-dlp's YYYYMMDD form.
	UploadDate string
}

// DownloadResult is the outcome of a successful yt-dlp invocation.
type DownloadResult struct {
	// Items lists every file yt-dlp reported as finished.
	Items []*DownloadedItem
}

// InstallResult describes a resolved yt-dlp installation.
type InstallResult struct {
	// Executable is the path of the yt-dlp executable.
	Executable string
	// Version is the yt-dlp version.
	Version string
}

// ProgressEvent is a download progress snapshot for one file.
type ProgressEvent struct {
	// Title identifies the file being downloaded.
	Title string
	// DownloadedBytes is the number of bytes received so far.
	DownloadedBytes int64
	// TotalBytes is the expected size, or zero when unknown.
	TotalBytes int64
}
