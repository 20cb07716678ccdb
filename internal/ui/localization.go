package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeySource           = "source"
	KeyFormat           = "format"
	KeyEnterURL         = "enter_url"
	KeyLoadInfo         = "load_info"
	KeyLoadingInfo      = "loading_info"
	KeySaveLocation     = "save_location"
	KeyBrowse           = "browse"
	KeyCombine          = "combine"
	KeyDownload         = "download"
	KeyReset            = "reset"
	KeyHistory          = "history"
	KeyClearHistory     = "clear_history"
	KeyReveal           = "reveal"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyDownloadDir      = "download_directory"
	KeyWritePlaylist    = "write_playlist"
	KeySettingsSaved    = "settings_saved"
	KeyReady            = "ready"
	KeyWarnings         = "warnings"
	KeyErrorOpeningFile = "error_opening_file"
)

// DefaultLanguage is used when a key or language is missing
const DefaultLanguage = "en"

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: DefaultLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; unknown codes are ignored
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = DefaultLanguage
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if text, found := l.texts[l.currentLanguage][key]; found {
		return text
	}
	if text, found := l.texts[DefaultLanguage][key]; found {
		return text
	}
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Playlist Downloader",
		KeySource:           "Source",
		KeyFormat:           "Format",
		KeyEnterURL:         "Playlist, video or album URL",
		KeyLoadInfo:         "Load",
		KeyLoadingInfo:      "Loading playlist info...",
		KeySaveLocation:     "Save location",
		KeyBrowse:           "Browse",
		KeyCombine:          "Combine into one file",
		KeyDownload:         "Download",
		KeyReset:            "Reset",
		KeyHistory:          "History",
		KeyClearHistory:     "Clear History",
		KeyReveal:           "Show File",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyDownloadDir:      "Default Download Directory",
		KeyWritePlaylist:    "Write M3U playlist",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyReady:            "Ready",
		KeyWarnings:         "Warnings",
		KeyErrorOpeningFile: "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Загрузчик плейлистов",
		KeySource:           "Источник",
		KeyFormat:           "Формат",
		KeyEnterURL:         "URL плейлиста, видео или альбома",
		KeyLoadInfo:         "Загрузить",
		KeyLoadingInfo:      "Загрузка информации о плейлисте...",
		KeySaveLocation:     "Папка сохранения",
		KeyBrowse:           "Обзор",
		KeyCombine:          "Объединить в один файл",
		KeyDownload:         "Скачать",
		KeyReset:            "Сброс",
		KeyHistory:          "История",
		KeyClearHistory:     "Очистить историю",
		KeyReveal:           "Показать файл",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyDownloadDir:      "Папка загрузки по умолчанию",
		KeyWritePlaylist:    "Записывать плейлист M3U",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyReady:            "Готово",
		KeyWarnings:         "Предупреждения",
		KeyErrorOpeningFile: "Ошибка открытия файла",
	}
}
