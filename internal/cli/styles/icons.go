package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "" // web
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconGo        = "" // go gopher
	IconArrow     = "" // arrow right
	IconCheck     = "" // check
	IconX         = "" // x
	IconWarning   = "" // warning
	IconFolder    = "" // folder
	IconConfig    = "" // config
	IconDatabase  = "" // database
	IconLogs      = "" // file-text
	IconSplit     = "" // columns
)
