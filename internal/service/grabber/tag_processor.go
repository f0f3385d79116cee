package grabber

//go:generate $MOCKGEN -source=tag_processor.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	"github.com/oshokin/tube-grabber/internal/constants"
	"github.com/oshokin/tube-grabber/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	// WriteTags writes ID3 tags describing the item onto its file.
	// Files other than MP3 are left untouched.
	WriteTags(ctx context.Context, item *ytdlp.DownloadedItem) error
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes ID3 tags describing the item onto its file.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, item *ytdlp.DownloadedItem) error {
	if item.Path == "" {
		return ErrEmptyFilePath
	}

	if !strings.EqualFold(filepath.Ext(item.Path), constants.ExtensionMP3) {
		logger.Debugf(ctx, "Skipping tags for non-MP3 file %s", item.Path)

		return nil
	}

	// Parse existing frames so tags written by yt-dlp are kept.
	//nolint:exhaustruct // ParseFrames omitted to parse every frame.
	tag, err := id3v2.Open(filepath.Clean(item.Path), id3v2.Options{Parse: true})
	if err != nil {
		return err
	}

	defer tag.Close()

	tp.addMP3Tags(ctx, tag, item)

	return tag.Save()
}

func (tp *TagProcessorImpl) addMP3Tags(ctx context.Context, tag *id3v2.Tag, item *ytdlp.DownloadedItem) {
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if item.Title != "" {
		tag.SetTitle(item.Title)
	}

	if item.Uploader != "" {
		tag.SetArtist(item.Uploader)
	}

	if item.PlaylistTitle != "" {
		tag.SetAlbum(item.PlaylistTitle)
	}

	if year := tp.releaseYear(ctx, item.UploadDate); year != "" {
		tag.SetYear(year)
	}

	// Track number and total tracks (e.g., "1/10").
	if item.PlaylistIndex > 0 {
		trackNumber := strconv.FormatInt(item.PlaylistIndex, 10)
		if item.PlaylistCount > 0 {
			trackNumber += "/" + strconv.FormatInt(item.PlaylistCount, 10)
		}

		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), trackNumber)
	}
}

// releaseYear extracts the year from an upload date such as "20240131".
func (tp *TagProcessorImpl) releaseYear(ctx context.Context, uploadDate string) string {
	if uploadDate == "" {
		return ""
	}

	date, err := dateparse.ParseAny(uploadDate)
	if err != nil {
		logger.Debugf(ctx, "Failed to parse upload date '%s': %v", uploadDate, err)

		return ""
	}

	return strconv.Itoa(date.Year())
}
