package diagfmt

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // as loaded; long absolute paths become basenames
	PathModeAbsolute                 // always absolute
	PathModeRelative                 // relative to BaseDir
	PathModeBasename                 // file name only
)

type PrettyOpts struct {
	Color     bool
	Context   int8 // extra source lines around the primary line
	PathMode  PathMode
	BaseDir   string // PathModeRelative base; "" is the working directory
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	BaseDir          string
	Max              int // 0 keeps every diagnostic
	IncludeNotes     bool
}
