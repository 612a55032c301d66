package app

import "errors"

// Sentinel kinds for orchestrator failures.
var (
	ErrEditorClosed      = errors.New("editor is not open")
	ErrInvalidEditorMode = errors.New("invalid editor mode")
	ErrSaveInProgress    = errors.New("save already in progress")
	ErrSaveRejected      = errors.New("save rejected by store")
	ErrExportInProgress  = errors.New("export already in progress")
	ErrSystemIndex       = errors.New("system index out of range")
	ErrUnknownScenario   = errors.New("unknown scenario")
	ErrNotRunning        = errors.New("service is not running")
)
