package exports

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultFolder = "Reddit_data"

// ResolveDir returns the export directory, creating it if needed.
// When configured is empty a Reddit_data folder on the user desktop is
// used, falling back to the home directory itself when no desktop exists.
func ResolveDir(configured string) (string, error) {
	dir := configured
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		desktop := filepath.Join(home, "Desktop")
		if _, err := os.Stat(desktop); err != nil {
			desktop = home
		}
		dir = filepath.Join(desktop, defaultFolder)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir %s: %w", dir, err)
	}
	return dir, nil
}

func stampedName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("02-01-2006_15-04-05"), ext)
}
