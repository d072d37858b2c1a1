package config

// File is the YAML shape of config.yaml.
type File struct {
	CacheDir       string  `yaml:"cache_dir"`
	DebounceWindow string  `yaml:"debounce_window"`
	Log            LogFile `yaml:"log"`
}

// LogFile is the log section of config.yaml.
type LogFile struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
