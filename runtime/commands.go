package runtime

// Command represents an action/intent emitted by widgets.
// Commands bubble up from widgets to the app for handling.
type Command interface {
	Command()
}

// Quit signals the application should exit.
type Quit struct{}

func (Quit) Command() {}

// Refresh requests a full redraw.
type Refresh struct{}

func (Refresh) Command() {}

// SendMsg posts a message into the app loop.
type SendMsg struct {
	Message Message
}

func (SendMsg) Command() {}

// Send wraps a message in a SendMsg command.
func Send(msg Message) Command {
	return SendMsg{Message: msg}
}

// RowActivated reports that a grid row was double clicked or activated
// from the keyboard.
type RowActivated struct {
	Row int
}

func (RowActivated) Command() {}

// MenuRequested asks the host to open a context menu. Row is -1 for a
// header menu. X and Y are surface coordinates. Actions lists the entries
// the widget handles itself; the host may add its own.
type MenuRequested struct {
	Col     int
	Row     int
	X, Y    int
	Actions []string
}

func (MenuRequested) Command() {}
