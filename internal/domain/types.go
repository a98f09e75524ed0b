package domain

// CellCoord identifies a tile on the grid.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is one cell of the candle grid. AdjacentCandles is computed once at
// generation and is only meaningful for non-candle tiles.
type Tile struct {
	Row             int       `json:"row"`
	Col             int       `json:"col"`
	IsCandle        bool      `json:"isCandle"`
	AdjacentCandles int       `json:"adjacentCandles"`
	State           TileState `json:"state"`
}

// Charm is a collectible reward. Once added to a collection it is never mutated.
type Charm struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Power       string  `json:"power"`
	Points      float64 `json:"points"`
	IconBgColor string  `json:"iconBgColor,omitempty"`
	IconColor   string  `json:"iconColor,omitempty"`
}

// Milestone is a named boolean checkpoint.
type Milestone struct {
	ID        MilestoneID `json:"id"`
	Label     string      `json:"label"`
	Completed bool        `json:"completed"`
}

// DefaultMilestones returns a fresh, uncompleted copy of the fixed milestone list.
func DefaultMilestones() []Milestone {
	return []Milestone{
		{ID: CallAnswered, Label: "Answered the call"},
		{ID: GiftRevealed, Label: "Revealed the gift"},
		{ID: PhotoSnapped, Label: "Snapped a photo"},
		{ID: CharmCollected, Label: "Collected a charm"},
		{ID: CDBurned, Label: "Burned the mix CD"},
		{ID: GamePlayed, Label: "Played the candle game"},
	}
}

// KnownMilestone reports whether id belongs to the fixed milestone list.
func KnownMilestone(id MilestoneID) bool {
	for _, m := range DefaultMilestones() {
		if m.ID == id {
			return true
		}
	}
	return false
}

// TileView is the host-facing rendering of a tile. Candle and adjacency
// details stay masked until the tile is revealed or the game has ended.
type TileView struct {
	State           TileState `json:"state"`
	IsCandle        bool      `json:"isCandle,omitempty"`
	AdjacentCandles int       `json:"adjacentCandles,omitempty"`
}

// GameSnapshot is a read-only view of one game for hosts.
type GameSnapshot struct {
	ID               string       `json:"id,omitempty"`
	Size             int          `json:"size"`
	Candles          int          `json:"candles"`
	Status           GameStatus   `json:"status"`
	StatusText       string       `json:"statusText"`
	FlagsPlaced      int          `json:"flagsPlaced"`
	RemainingCandles int          `json:"remainingCandles"`
	Tiles            [][]TileView `json:"tiles"`
}

// Hint describes a tile that can be revealed without risk.
type Hint struct {
	Message string    `json:"message,omitempty"`
	Cell    CellCoord `json:"cell"`
}
