// Package grabber provides the download workflow behind the interactive session.
// It validates download requests, prepares the output directory, checks for the
// media converter, translates requests into yt-dlp options, tags MP3 results,
// and reports what was written.
package grabber
