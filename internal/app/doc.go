// Package app wires the interactive download session together.
// It builds the yt-dlp client, the download service and the console prompter,
// runs one session and turns its outcome into a process exit status.
// It also hosts the entry points of the install and config subcommands.
package app
