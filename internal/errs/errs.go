package errs

import (
	"errors"
	"fmt"
)

// Outcome sentinels for a single mod's update. The sync engine classifies
// collaborator errors with errors.Is against these and downgrades them to
// report entries; they never abort a batch.
var (
	ErrNotFound            = errors.New("project not found in registry")
	ErrNoCompatibleVersion = errors.New("no compatible version")
	ErrTransport           = errors.New("registry unreachable")
	ErrIntegrityMismatch   = errors.New("checksum mismatch")
	ErrFilesystem          = errors.New("artifact store failure")
	ErrAcquisition         = errors.New("loader acquisition failed")
	ErrLifecycle           = errors.New("service lifecycle operation failed")
)

type Code string

const (
	ProvideModIDs       Code = "PROVIDE_MOD_IDS"
	RemoveAllNeedsForce Code = "REMOVE_ALL_NEEDS_FORCE"
)

var messages = map[Code]string{
	ProvideModIDs: `Missing targets: provide at least one mod id

Examples:
  lode %[1]s fabric-api sodium      # %[1]s specific mods`,

	RemoveAllNeedsForce: `--all requires --force

Usage:
  - Stop tracking every mod in mods.yml (destructive):
      lode remove --all --force

Reason:
  --all empties the manifest. --force is required to acknowledge this.`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
