package config

const (
	defaultDataDir      = "~/.local/share/outreach/data"
	defaultUploadDir    = "~/.local/share/outreach/uploads"
	defaultLogDir       = "~/.local/share/outreach/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultMaxUploadMiB = 16
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			UploadDir: defaultUploadDir,
			LogDir:    defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Roster: Roster{
			MaxUploadMiB: defaultMaxUploadMiB,
		},
	}
}
