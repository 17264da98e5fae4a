package config

// BuildVersion is set at build time with -ldflags "-X ...config.BuildVersion=..."
var BuildVersion = "0.0.0-dev"
