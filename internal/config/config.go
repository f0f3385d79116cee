package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/tube-grabber/internal/constants"
	"github.com/oshokin/tube-grabber/internal/logger"
	"github.com/oshokin/tube-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// OutputPath is the directory offered as the default answer to the output directory prompt.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	// MaxVideoHeight caps the height of the video stream requested for MP4 downloads.
	MaxVideoHeight int64 `mapstructure:"max_video_height" yaml:"max_video_height"`
	// AudioBitrateKbps is the MP3 bitrate requested from the converter.
	AudioBitrateKbps int64 `mapstructure:"audio_bitrate_kbps" yaml:"audio_bitrate_kbps"`
	// FilenameTemplate is the yt-dlp output template for downloaded files.
	FilenameTemplate string `mapstructure:"filename_template" yaml:"filename_template"`
	// YtDlpPath is the path to the yt-dlp executable. Empty means lookup in PATH.
	YtDlpPath string `mapstructure:"ytdlp_path" yaml:"ytdlp_path"`
	// FFmpegPath is the path to the ffmpeg executable. Empty means lookup in PATH.
	FFmpegPath string `mapstructure:"ffmpeg_path" yaml:"ffmpeg_path"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit" yaml:"download_speed_limit"`
	// RestrictFilenames limits filenames to ASCII characters without spaces.
	RestrictFilenames bool `mapstructure:"restrict_filenames" yaml:"restrict_filenames"`
	// WriteTags indicates whether ID3 tags are written onto downloaded MP3 files.
	WriteTags bool `mapstructure:"write_tags" yaml:"write_tags"`
	// ShowProgress indicates whether download progress bars are rendered.
	ShowProgress bool `mapstructure:"show_progress" yaml:"show_progress"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogFile is an optional path of a rotated log file.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64 `yaml:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".tube-grabber.yaml"

	// EnvPrefix is the prefix of environment variables overriding configuration keys.
	EnvPrefix = "TUBE_GRABBER"

	// DefaultOutputPath is the default directory for downloaded files.
	DefaultOutputPath = "videos"

	// DefaultMaxVideoHeight is the default height ceiling for MP4 downloads.
	DefaultMaxVideoHeight = 1440

	// DefaultAudioBitrateKbps is the default MP3 bitrate.
	DefaultAudioBitrateKbps = 192

	// DefaultFilenameTemplate is the default yt-dlp output template.
	DefaultFilenameTemplate = "%(title)s.%(ext)s"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultMaxLogSizeMB is the default size (in megabytes) after which the log file is rotated.
	DefaultMaxLogSizeMB = 1

	// DefaultMaxLogBackups is the default number of rotated log files to keep.
	DefaultMaxLogBackups = 3

	// minAudioBitrateKbps is the lowest MP3 bitrate accepted.
	minAudioBitrateKbps = 32
	// maxAudioBitrateKbps is the highest MP3 bitrate accepted.
	maxAudioBitrateKbps = 320
)

// Static error definitions for better error handling.
var (
	// ErrEmptyOutputPath indicates that the default output path is empty.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrInvalidMaxVideoHeight indicates that the video height ceiling is invalid.
	ErrInvalidMaxVideoHeight = errors.New("max_video_height must be a positive integer")
	// ErrInvalidAudioBitrate indicates that the MP3 bitrate is invalid.
	ErrInvalidAudioBitrate = errors.New("invalid audio_bitrate_kbps")
	// ErrInvalidFilenameTemplate indicates that the output template is unusable.
	ErrInvalidFilenameTemplate = errors.New("filename_template must contain %(ext)s")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrConfigFileExists indicates that the configuration file would be overwritten.
	ErrConfigFileExists = errors.New("configuration file already exists")
)

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		OutputPath:       DefaultOutputPath,
		MaxVideoHeight:   DefaultMaxVideoHeight,
		AudioBitrateKbps: DefaultAudioBitrateKbps,
		FilenameTemplate: DefaultFilenameTemplate,
		WriteTags:        true,
		ShowProgress:     true,
		LogLevel:         DefaultLogLevel,
	}
}

// LoadConfig loads configuration settings from defaults, an optional YAML file and the environment.
// An explicitly named file must exist, while the default file may be absent.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	v.SetConfigFile(configFilename)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if isExplicit || !isMissingFile(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("max_video_height", defaults.MaxVideoHeight)
	v.SetDefault("audio_bitrate_kbps", defaults.AudioBitrateKbps)
	v.SetDefault("filename_template", defaults.FilenameTemplate)
	v.SetDefault("ytdlp_path", defaults.YtDlpPath)
	v.SetDefault("ffmpeg_path", defaults.FFmpegPath)
	v.SetDefault("download_speed_limit", defaults.DownloadSpeedLimit)
	v.SetDefault("restrict_filenames", defaults.RestrictFilenames)
	v.SetDefault("write_tags", defaults.WriteTags)
	v.SetDefault("show_progress", defaults.ShowProgress)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
}

func isMissingFile(err error) bool {
	var notFoundErr viper.ConfigFileNotFoundError
	if errors.As(err, &notFoundErr) {
		return true
	}

	return errors.Is(err, os.ErrNotExist)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	var (
		downloadSpeedLimit       = strings.TrimSpace(cfg.DownloadSpeedLimit)
		parsedDownloadSpeedLimit uint64
		err                      error
	)

	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	if cfg.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	if cfg.MaxVideoHeight <= 0 {
		return ErrInvalidMaxVideoHeight
	}

	if cfg.AudioBitrateKbps < minAudioBitrateKbps || cfg.AudioBitrateKbps > maxAudioBitrateKbps {
		return fmt.Errorf("%w: must be between %d and %d",
			ErrInvalidAudioBitrate, minAudioBitrateKbps, maxAudioBitrateKbps)
	}

	if !strings.Contains(cfg.FilenameTemplate, "%(ext)s") {
		return fmt.Errorf("%w: '%s'", ErrInvalidFilenameTemplate, cfg.FilenameTemplate)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err = humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}
	}

	cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)

	return nil
}

// WriteDefaultConfig writes the default configuration as YAML to the given path.
// An existing file is never overwritten.
func WriteDefaultConfig(configFilename string) (string, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	isExist, err := utils.IsFileExist(configFilename)
	if err != nil {
		return "", fmt.Errorf("failed to check config file: %w", err)
	}

	if isExist {
		return "", fmt.Errorf("%w: %s", ErrConfigFileExists, configFilename)
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFilename, nil
}
