package players

// Status is the derived auction outcome for a player.
type Status string

const (
	StatusSold   Status = "sold"
	StatusUnsold Status = "unsold"
)

// DeriveStatus applies the sold rule: a positive price and a buyer.
func DeriveStatus(soldPrice int64, team string) Status {
	if soldPrice > 0 && team != "" {
		return StatusSold
	}
	return StatusUnsold
}

// Player is the reconciled view of one catalogue row joined with its auction record.
type Player struct {
	Name             string `json:"name"`
	Team             string `json:"team"`
	Role             string `json:"role"`
	Nation           string `json:"nation"`
	Age              *int   `json:"age,omitempty"`
	T20Matches       *int   `json:"t20Matches,omitempty"`
	BasePrice        int64  `json:"basePrice"`
	SoldPrice        int64  `json:"soldPrice"`
	Status           Status `json:"status"`
	Overseas         bool   `json:"overseas"`
	Points           int    `json:"points"`
	EvaluationPoints int    `json:"evaluationPoints"`
	Images           string `json:"images,omitempty"`
	OriginalIndex    int    `json:"originalIndex"`
}

// Sold reports whether the player carries the sold status.
func (p Player) Sold() bool {
	return p.Status == StatusSold
}
