package component

type TeamID string

const (
	TeamPlayer TeamID = "player"
	TeamEnemy  TeamID = "enemy"
)

type Team struct {
	ID TeamID
}

var TeamComponent = NewComponent[Team]()
