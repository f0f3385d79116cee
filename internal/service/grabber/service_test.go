package grabber_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	mock_ytdlp "github.com/oshokin/tube-grabber/internal/client/ytdlp/mocks"
	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/constants"
	"github.com/oshokin/tube-grabber/internal/service/grabber"
	mock_grabber "github.com/oshokin/tube-grabber/internal/service/grabber/mocks"
)

const (
	testVideoURL    = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	testPlaylistURL = "https://www.youtube.com/playlist?list=PLabc"
	testFFmpegPath  = "/usr/bin/ffmpeg"
)

// testServiceSetup encapsulates common test dependencies and configuration.
type testServiceSetup struct {
	client       *mock_ytdlp.MockClient
	converter    *mock_grabber.MockConverterLocator
	tagProcessor *mock_grabber.MockTagProcessor
	service      grabber.Service
	config       *config.Config
	tempDir      string
}

// newTestServiceSetup creates a service wired to mocks with optional config overrides.
func newTestServiceSetup(t *testing.T, configOverrides ...func(*config.Config)) *testServiceSetup {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := config.Default()
	cfg.ShowProgress = false

	for _, override := range configOverrides {
		override(cfg)
	}

	setup := &testServiceSetup{
		client:       mock_ytdlp.NewMockClient(ctrl),
		converter:    mock_grabber.NewMockConverterLocator(ctrl),
		tagProcessor: mock_grabber.NewMockTagProcessor(ctrl),
		config:       cfg,
		tempDir:      t.TempDir(),
	}

	setup.service = grabber.NewService(cfg, setup.client, setup.converter, setup.tagProcessor)

	return setup
}

// writeItems returns a Download implementation that creates one file per name in the output directory.
func writeItems(
	t *testing.T,
	outputPath string,
	names ...string,
) func(context.Context, *ytdlp.DownloadOptions) (*ytdlp.DownloadResult, error) {
	t.Helper()

	return func(_ context.Context, _ *ytdlp.DownloadOptions) (*ytdlp.DownloadResult, error) {
		result := new(ytdlp.DownloadResult)

		for i, name := range names {
			path := filepath.Join(outputPath, name)

			err := os.WriteFile(path, []byte("media-"+name), constants.DefaultFilePermissions)
			if err != nil {
				return nil, err
			}

			result.Items = append(result.Items, &ytdlp.DownloadedItem{
				Path:          path,
				Title:         name,
				PlaylistIndex: int64(i + 1),
				PlaylistCount: int64(len(names)),
			})
		}

		return result, nil
	}
}

// listFiles returns the names of files in dir with the given extension.
func listFiles(t *testing.T, dir, extension string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == extension {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names
}

// TestDownload_SingleMP4 tests that a single video URL produces exactly one MP4.
func TestDownload_SingleMP4(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)
	outputPath := filepath.Join(setup.tempDir, "videos")

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts *ytdlp.DownloadOptions) (*ytdlp.DownloadResult, error) {
			assert.Equal(t, testVideoURL, opts.URL)
			assert.Equal(t, "bestvideo[height<=1440]+bestaudio/best[height<=1440]", opts.Format)
			assert.Equal(t, "mp4", opts.MergeOutputFormat)
			assert.False(t, opts.ExtractAudio)
			assert.True(t, opts.NoPlaylist)
			assert.Equal(t, filepath.Join(outputPath, "%(title)s.%(ext)s"), opts.OutputTemplate)
			// ffmpeg found in PATH is left for yt-dlp to find.
			assert.Empty(t, opts.FFmpegLocation)

			return writeItems(t, outputPath, "Video.mp4")(ctx, opts)
		})

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP4,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: outputPath,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Video.mp4"}, listFiles(t, outputPath, ".mp4"))
	require.Len(t, report.Files, 1)
	assert.Equal(t, int64(len("media-Video.mp4")), report.TotalBytes)
	assert.Zero(t, report.TagsWritten)
	assert.False(t, report.EndTime.Before(report.StartTime))
}

// TestDownload_SingleMP3 tests that an audio download requests 192 kbps MP3 and tags the result.
func TestDownload_SingleMP3(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t, func(cfg *config.Config) {
		cfg.FFmpegPath = testFFmpegPath
	})
	outputPath := setup.tempDir

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts *ytdlp.DownloadOptions) (*ytdlp.DownloadResult, error) {
			assert.Equal(t, "bestaudio/best", opts.Format)
			assert.True(t, opts.ExtractAudio)
			assert.Equal(t, "mp3", opts.AudioFormat)
			assert.Equal(t, "192K", opts.AudioQuality)
			assert.Equal(t, testFFmpegPath, opts.FFmpegLocation)
			assert.Empty(t, opts.MergeOutputFormat)

			return writeItems(t, outputPath, "Song.mp3")(ctx, opts)
		})
	setup.tagProcessor.EXPECT().WriteTags(gomock.Any(), gomock.Any()).Return(nil)

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP3,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: outputPath,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Song.mp3"}, listFiles(t, outputPath, ".mp3"))
	assert.Equal(t, int64(1), report.TagsWritten)
}

// TestDownload_TaggingFailureDoesNotFail tests that a failed tag write is only a warning.
func TestDownload_TaggingFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(writeItems(t, setup.tempDir, "Song.mp3"))
	setup.tagProcessor.EXPECT().WriteTags(gomock.Any(), gomock.Any()).Return(errors.New("broken frame"))

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP3,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: setup.tempDir,
	})
	require.NoError(t, err)
	assert.Len(t, report.Files, 1)
	assert.Zero(t, report.TagsWritten)
}

// TestDownload_TagsDisabled tests that write_tags=false skips tagging.
func TestDownload_TagsDisabled(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t, func(cfg *config.Config) {
		cfg.WriteTags = false
	})

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(writeItems(t, setup.tempDir, "Song.mp3"))

	_, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP3,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: setup.tempDir,
	})
	require.NoError(t, err)
}

// TestDownload_Playlist tests that playlist scope produces one file per entry.
func TestDownload_Playlist(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)
	outputPath := setup.tempDir

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts *ytdlp.DownloadOptions) (*ytdlp.DownloadResult, error) {
			assert.False(t, opts.NoPlaylist)

			return writeItems(t, outputPath, "One.mp4", "Two.mp4", "Three.mp4")(ctx, opts)
		})

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testPlaylistURL,
		Format:     grabber.MediaFormatMP4,
		Scope:      grabber.DownloadScopePlaylist,
		OutputPath: outputPath,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"One.mp4", "Three.mp4", "Two.mp4"}, listFiles(t, outputPath, ".mp4"))
	assert.Len(t, report.Files, 3)
}

// TestDownload_EmptyURL tests that an empty URL fails validation without touching the filesystem.
func TestDownload_EmptyURL(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)
	outputPath := filepath.Join(setup.tempDir, "never-created")

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        "   ",
		Format:     grabber.MediaFormatMP4,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: outputPath,
	})
	require.ErrorIs(t, err, grabber.ErrInputValidation)
	require.ErrorIs(t, err, grabber.ErrEmptyURL)
	assert.Nil(t, report)
	assert.NoDirExists(t, outputPath)
}

// TestDownload_ConverterUnavailable tests that MP3 without ffmpeg fails before yt-dlp runs.
func TestDownload_ConverterUnavailable(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)
	outputPath := filepath.Join(setup.tempDir, "audio")

	setup.converter.EXPECT().Locate().Return("", grabber.ErrConverterNotFound)

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP3,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: outputPath,
	})
	require.ErrorIs(t, err, grabber.ErrConversion)
	require.ErrorIs(t, err, grabber.ErrConverterNotFound)
	assert.Nil(t, report)
	assert.NoDirExists(t, outputPath)
}

// TestDownload_ConverterUnavailableMP4 tests that MP4 proceeds without ffmpeg.
// The pre-merged stream yt-dlp falls back to is still reported even when its container differs.
func TestDownload_ConverterUnavailableMP4(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)

	setup.converter.EXPECT().Locate().Return("", grabber.ErrConverterNotFound)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(writeItems(t, setup.tempDir, "Video.webm"))

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP4,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: setup.tempDir,
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, filepath.Join(setup.tempDir, "Video.webm"), report.Files[0].Path)
}

// TestDownload_CustomOutputDirectory tests that a nested output directory is created.
func TestDownload_CustomOutputDirectory(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)
	outputPath := filepath.Join(setup.tempDir, "my", "music", "dir")

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts *ytdlp.DownloadOptions) (*ytdlp.DownloadResult, error) {
			assert.DirExists(t, outputPath)

			return writeItems(t, outputPath, "Video.mp4")(ctx, opts)
		})

	_, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP4,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: outputPath,
	})
	require.NoError(t, err)

	stat, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.Equal(t, []string{"Video.mp4"}, listFiles(t, outputPath, ".mp4"))
}

// TestDownload_ClientErrors tests the mapping of client errors onto error classes.
func TestDownload_ClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		clientErr   error
		expectedErr error
	}{
		{
			name:        "extraction failure",
			clientErr:   ytdlp.ErrExtraction,
			expectedErr: grabber.ErrExternalService,
		},
		{
			name:        "missing executable",
			clientErr:   ytdlp.ErrExecutableUnavailable,
			expectedErr: grabber.ErrExternalService,
		},
		{
			name:        "conversion failure",
			clientErr:   ytdlp.ErrConversion,
			expectedErr: grabber.ErrConversion,
		},
		{
			name:        "interrupted",
			clientErr:   context.Canceled,
			expectedErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			setup := newTestServiceSetup(t)

			setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
			setup.client.EXPECT().Download(gomock.Any(), gomock.Any()).Return(nil, tt.clientErr)

			report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
				URL:        testVideoURL,
				Format:     grabber.MediaFormatMP4,
				Scope:      grabber.DownloadScopeSingle,
				OutputPath: setup.tempDir,
			})
			require.ErrorIs(t, err, tt.expectedErr)
			require.ErrorIs(t, err, tt.clientErr)
			assert.Nil(t, report)
		})
	}
}

// TestDownload_MissingReportedFile tests that files yt-dlp reported but did not leave behind are skipped.
func TestDownload_MissingReportedFile(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)

	setup.converter.EXPECT().Locate().Return(testFFmpegPath, nil)
	setup.client.EXPECT().
		Download(gomock.Any(), gomock.Any()).
		Return(&ytdlp.DownloadResult{
			Items: []*ytdlp.DownloadedItem{{Path: filepath.Join(setup.tempDir, "gone.mp4")}},
		}, nil)

	report, err := setup.service.Download(context.Background(), &grabber.DownloadRequest{
		URL:        testVideoURL,
		Format:     grabber.MediaFormatMP4,
		Scope:      grabber.DownloadScopeSingle,
		OutputPath: setup.tempDir,
	})
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Zero(t, report.TotalBytes)
}
