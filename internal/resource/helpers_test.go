package resource_test

import (
	"os"
	"path/filepath"

	"github.com/tartampluch/go-calendars/internal/config"
)

func writeFile(dir, name, body string) error {
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), config.DirPermUserRWX); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(body), config.FilePermUserRW)
}
