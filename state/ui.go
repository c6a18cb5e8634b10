package state

// Panel is a UI layer whose visibility follows the game state.
type Panel int

const (
	PanelHUD Panel = iota
	PanelPause
	PanelGameOver
)

func (p Panel) String() string {
	switch p {
	case PanelHUD:
		return "hud"
	case PanelPause:
		return "pause"
	case PanelGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// UIManager mirrors the Manager's state into panel visibility.
type UIManager struct {
	visible map[Panel]bool
}

func NewUIManager(m *Manager) *UIManager {
	ui := &UIManager{visible: map[Panel]bool{}}
	ui.apply(m.State())
	m.OnStateChange(func(_, next State) { ui.apply(next) })
	return ui
}

func (ui *UIManager) apply(s State) {
	ui.visible[PanelHUD] = s != GameOver
	ui.visible[PanelPause] = s == Paused
	ui.visible[PanelGameOver] = s == GameOver
}

func (ui *UIManager) Visible(p Panel) bool { return ui.visible[p] }
