package config

// Actions the key map can bind. Key-to-action bindings are user configurable
// through the keys section of the config file.
const (
	ActionQuit           = "quit"
	ActionBack           = "back"
	ActionUnselect       = "unselect"
	ActionDown           = "down"
	ActionUp             = "up"
	ActionTop            = "top"
	ActionBottom         = "bottom"
	ActionNextParent     = "next_parent"
	ActionPreviousParent = "previous_parent"
	ActionParent         = "parent"
	ActionOpen           = "open"
	ActionOpenURL        = "open_url"
	ActionCopy           = "copy"
	ActionRefresh        = "refresh"
)

// DefaultKeys returns the built-in bindings.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		ActionQuit:           {"q", "ctrl+c"},
		ActionBack:           {"esc", "h"},
		ActionUnselect:       {"l"},
		ActionDown:           {"j", "down"},
		ActionUp:             {"k", "up"},
		ActionTop:            {"g", "home"},
		ActionBottom:         {"G", "end"},
		ActionNextParent:     {"]"},
		ActionPreviousParent: {"["},
		ActionParent:         {"p"},
		ActionOpen:           {"enter"},
		ActionOpenURL:        {"o"},
		ActionCopy:           {"y"},
		ActionRefresh:        {"r"},
	}
}

func isValidAction(action string) bool {
	_, ok := DefaultKeys()[action]
	return ok
}
