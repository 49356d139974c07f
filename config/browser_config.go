package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// BrowserConfig controls how the Chromium process is launched.
type BrowserConfig struct {
	// ExecutablePath is the resolved browser binary. Empty means the rod
	// launcher downloads and uses its own bundled revision.
	ExecutablePath string
	Headless       bool
	NoSandbox      bool
}

// LoadBrowserConfig resolves the browser executable and launch flags.
func LoadBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		ExecutablePath: resolveExecutable(),
		Headless:       getEnv("BROWSER_HEADLESS", "true") == "true",
		NoSandbox:      true,
	}
}

// resolveExecutable picks the browser binary in priority order: explicit
// override, legacy override, then platform-known install paths. Empty result
// falls through to the launcher's bundled default.
func resolveExecutable() string {
	if path := os.Getenv("CHROMIUM_EXECUTABLE"); path != "" {
		return path
	}
	if path := os.Getenv("PUPPETEER_EXECUTABLE_PATH"); path != "" {
		return path
	}

	for _, candidate := range knownInstallPaths() {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

func knownInstallPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			filepath.Join(home, "Applications/Chromium.app/Contents/MacOS/Chromium"),
		}
	default:
		return []string{
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/usr/bin/google-chrome",
		}
	}
}
