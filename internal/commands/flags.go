package commands

import (
	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/config"
	"github.com/fragmede/hackerterm/internal/history"
	"github.com/fragmede/hackerterm/internal/thread"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Limit      int
}

// Runtime holds the collaborators built in the Before hook and shared by all
// commands.
type Runtime struct {
	Config   *config.Config
	Client   *api.Client
	Resolver *thread.Resolver
	History  history.Marker
}
