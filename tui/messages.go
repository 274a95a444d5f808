// ABOUTME: Bubble Tea message types used in the TUI message loop.
// ABOUTME: Each type carries the result of an asynchronous command back to the AppModel.
package tui

// ExportDoneMsg signals that an export command finished.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// StatusMsg replaces the status bar message.
type StatusMsg struct {
	Text  string
	Error bool
}
