package domain

// TileState is the player-visible state of one tile.
type TileState int

const (
	Hidden TileState = iota
	Revealed
	Flagged
)

func (s TileState) String() string {
	switch s {
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "hidden"
	}
}

// GameStatus is global to one grid. Won and Lost are terminal.
type GameStatus int

const (
	Playing GameStatus = iota
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Terminal reports whether no further reveal/flag mutations are accepted.
func (s GameStatus) Terminal() bool { return s == Won || s == Lost }

// MilestoneID names one checkpoint of the session. The set is closed.
type MilestoneID string

const (
	CallAnswered   MilestoneID = "call-answered"
	GiftRevealed   MilestoneID = "gift-revealed"
	PhotoSnapped   MilestoneID = "photo-snapped"
	CharmCollected MilestoneID = "charm-collected"
	CDBurned       MilestoneID = "cd-burned"
	GamePlayed     MilestoneID = "game-played"
)
