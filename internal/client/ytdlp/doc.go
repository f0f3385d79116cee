// Package ytdlp is the narrow call contract to the external yt-dlp downloader.
// It translates download options into a yt-dlp invocation through go-ytdlp,
// runs it synchronously, renders progress, parses the per-file metadata yt-dlp
// prints after moving each file into place, and classifies failures into
// extraction and conversion errors.
package ytdlp
