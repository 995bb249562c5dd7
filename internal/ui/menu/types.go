package menu

type Action int

const (
	ActionNone Action = iota
	ActionCycleTheme
	ActionCyclePacing
	ActionQuit
)
