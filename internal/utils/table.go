package utils

import "github.com/lodehq/lode/internal/logger"

type ModStatus struct {
	Mod       string
	Installed string
	Latest    string
	Status    string
}

func CreateStatusTable(title string, mods []ModStatus) {
	if title != "" {
		logger.Info("%s", title)
	}

	table := logger.CreateTable([]string{"Mod", "Installed file", "Latest", "Status"})

	for _, m := range mods {
		if err := table.Append([]string{m.Mod, m.Installed, m.Latest, m.Status}); err != nil {
			logger.LogError("Error appending to table: %v", err)
			return
		}
	}

	if err := table.Render(); err != nil {
		logger.LogError("Error rendering table: %v", err)
	}
}
