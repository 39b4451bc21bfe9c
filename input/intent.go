package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit   // q, Esc, Ctrl+C
	IntentClear  // c, Space: wipe trail and restart time
	IntentPause  // p
	IntentExport // e: write trail image
	IntentResize // terminal resize event
)

var intentNames = map[IntentType]string{
	IntentNone:   "none",
	IntentQuit:   "quit",
	IntentClear:  "clear",
	IntentPause:  "pause",
	IntentExport: "export",
	IntentResize: "resize",
}

// String returns the action name used in config files
func (i IntentType) String() string {
	if n, ok := intentNames[i]; ok {
		return n
	}
	return "unknown"
}
