package config

// Package config stores user settings. The desktop app keeps them in fyne
// preferences; the CLI and web server read them through viper from a config
// file, environment variables and flags.
