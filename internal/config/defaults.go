package config

const (
	defaultStoriesCSV     = "~/.local/share/reelsmith/content/stories.csv"
	defaultHooksCSV       = "~/.local/share/reelsmith/content/hooks.csv"
	defaultBackgroundsDir = "~/.local/share/reelsmith/assets/backgrounds"
	defaultHookVideosDir  = "~/.local/share/reelsmith/assets/hooks"
	defaultCTAVideosDir   = "~/.local/share/reelsmith/assets/cta"
	defaultMusicDir       = "~/.local/share/reelsmith/assets/music"
	defaultLibraryDir     = "~/videos/reelsmith"
	defaultStagingDir     = "~/.local/share/reelsmith/staging"
	defaultTrackingDir    = "~/.local/share/reelsmith/tracking"
	defaultLogDir         = "~/.local/share/reelsmith/logs"

	defaultTitleFontSize       = 80.0
	defaultBodyFontSize        = 50.0
	defaultMinFontSize         = 28.0
	defaultTextColor           = "white"
	defaultLineSpacing         = 10.0
	defaultBlockSpacing        = 40.0
	defaultTitlePositionFactor = 0.15
	defaultStoryPositionFactor = 0.35
	defaultHookPositionFactor  = 0.33

	defaultMaxChars  = 500
	defaultMinLength = 130

	defaultWordsPerMinute    = 180.0
	defaultMinSegmentSeconds = 1.0
	defaultMaxSegmentSeconds = 8.0
	defaultTitleCardSeconds  = 3.0
	defaultFadeSeconds       = 0.2

	defaultMarginTop    = 252
	defaultMarginBottom = 640
	defaultMarginLeft   = 120
	defaultMarginRight  = 240

	defaultFrameWidth      = 1080
	defaultFrameHeight     = 1920
	defaultFrameRate       = 24
	defaultVideoCodec      = "libx264"
	defaultAudioCodec      = "aac"
	defaultAudioBitrate    = "192k"
	defaultPreset          = "medium"
	defaultOverlayOpacity  = 0.4
	defaultMusicVolume     = 0.3
	defaultNarrationVolume = 1.0

	defaultTTSModel          = "eleven_multilingual_v2"
	defaultTTSBaseURL        = "https://api.elevenlabs.io"
	defaultTTSTimeoutSeconds = 60

	defaultSelectionMode = "random"

	defaultProject      = "reelsmith"
	defaultSummaryWords = 4

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StoriesCSV:     defaultStoriesCSV,
			HooksCSV:       defaultHooksCSV,
			BackgroundsDir: defaultBackgroundsDir,
			HookVideosDir:  defaultHookVideosDir,
			CTAVideosDir:   defaultCTAVideosDir,
			MusicDir:       defaultMusicDir,
			LibraryDir:     defaultLibraryDir,
			StagingDir:     defaultStagingDir,
			TrackingDir:    defaultTrackingDir,
			LogDir:         defaultLogDir,
		},
		Captions: Captions{
			TitleFontSize:       defaultTitleFontSize,
			BodyFontSize:        defaultBodyFontSize,
			MinFontSize:         defaultMinFontSize,
			TextColor:           defaultTextColor,
			LineSpacing:         defaultLineSpacing,
			BlockSpacing:        defaultBlockSpacing,
			TitlePositionFactor: defaultTitlePositionFactor,
			StoryPositionFactor: defaultStoryPositionFactor,
			HookPositionFactor:  defaultHookPositionFactor,
		},
		Segmentation: Segmentation{
			MaxChars:      defaultMaxChars,
			MinLength:     defaultMinLength,
			UseParagraphs: true,
		},
		Timing: Timing{
			WordsPerMinute:    defaultWordsPerMinute,
			MinSegmentSeconds: defaultMinSegmentSeconds,
			MaxSegmentSeconds: defaultMaxSegmentSeconds,
			TitleCardSeconds:  defaultTitleCardSeconds,
			FadeSeconds:       defaultFadeSeconds,
		},
		SafeArea: SafeArea{
			Enabled:      true,
			MarginTop:    defaultMarginTop,
			MarginBottom: defaultMarginBottom,
			MarginLeft:   defaultMarginLeft,
			MarginRight:  defaultMarginRight,
		},
		Render: Render{
			FrameWidth:      defaultFrameWidth,
			FrameHeight:     defaultFrameHeight,
			FrameRate:       defaultFrameRate,
			VideoCodec:      defaultVideoCodec,
			AudioCodec:      defaultAudioCodec,
			AudioBitrate:    defaultAudioBitrate,
			Preset:          defaultPreset,
			OverlayOpacity:  defaultOverlayOpacity,
			MusicVolume:     defaultMusicVolume,
			NarrationVolume: defaultNarrationVolume,
		},
		TTS: TTS{
			Model:          defaultTTSModel,
			BaseURL:        defaultTTSBaseURL,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Assets: Assets{
			SelectionMode: defaultSelectionMode,
		},
		Organize: Organize{
			Project:      defaultProject,
			SummaryWords: defaultSummaryWords,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
