package initiator

import (
	"os"
	"path/filepath"

	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/utils"
)

const configTemplate = `install:
  dir: .
mods:
  dir: mods
  file: mods.yml
registry:
  url: https://api.modrinth.com/v2
game:
  version: "1.21.1"
loader:
  kind: fabric
  version: latest
  meta_url: https://meta.fabricmc.net/v2
http:
  timeout_ms: 30000
backup:
  enabled: true
  dir: backups
service:
  unit: ""
  restart_on_update: false
`

type Initiator struct{}

func New() *Initiator {
	return &Initiator{}
}

// Execute drops a settings template and an empty manifest in the working
// directory, skipping files that already exist.
func (*Initiator) Execute() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfgFile := filepath.Join(cwd, "lode.yaml")
	if ok, _ := utils.FileExists(cfgFile); !ok {
		if err := utils.CreateFile(cfgFile, []byte(configTemplate), utils.FileTypeBinary, 0o644); err != nil {
			return err
		}
		logger.Success("Created %s (set game.version before syncing)", cfgFile)
	}

	modsFile := filepath.Join(cwd, "mods.yml")
	if ok, _ := utils.FileExists(modsFile); !ok {
		if err := utils.CreateFile(modsFile, []byte("mods: []\n"), utils.FileTypeBinary, 0o644); err != nil {
			return err
		}
		logger.Success("Created empty %s", modsFile)
	}

	return nil
}
