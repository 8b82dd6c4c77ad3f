package entity

const (
	HumanType = "human"
	BotType   = "bot"
)

type Player struct {
	Mark string `json:"mark"`
	Type string `json:"type"`
}

func NewHumanPlayer(mark string) *Player {
	return &Player{Mark: mark, Type: HumanType}
}

func NewBotPlayer(mark string) *Player {
	return &Player{Mark: mark, Type: BotType}
}

func (that *Player) IsBot() bool {
	return that.Type == BotType
}
