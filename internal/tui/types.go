package tui

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/contentstudio/server/internal/clipboard"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/notifications"
	"codeberg.org/contentstudio/server/internal/studio"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// timeout for one generate or usage request
const requestTimeout = 60 * time.Second

// where generation happens: in process or on the server
type Backend interface {
	Generate(ctx context.Context, input content.BrandInput) (*studio.Result, error)
	Usage(ctx context.Context) (studio.Usage, error)
}

// generates with an in-process studio backed by local storage
type LocalBackend struct {
	studio    *studio.Studio
	clientKey string
}

// talks to the content studio REST API
type RemoteClient struct {
	endpoint   string
	clientID   string
	httpClient *http.Client
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

// one row of the brand form
type field struct {
	label    string
	required bool
	kind     fieldKind
	input    textinput.Model
	options  []content.Option
	selected int // -1 when nothing is chosen
}

// the generate screen
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	backend Backend
	copier  *clipboard.Copier

	fields []field
	focus  int

	width  int
	height int

	usage      studio.Usage
	bundle     *content.Bundle
	toast      *notifications.Toast
	copied     string // "caption-N" or "hashtags" while the copied marker shows
	copySeq    int
	generating bool
	rechecking bool
	seq        int
	closed     bool
	spinner    spinner.Model
}

// sent when a generate request completes
type GeneratedMsg struct {
	seq    int
	result *studio.Result
	err    error
}

// sent when the copied marker should be cleared
type clearCopiedMsg struct {
	seq int
}

// sent when the usage counter has been read
type UsageMsg struct {
	usage studio.Usage
	err   error
	retry bool
}
