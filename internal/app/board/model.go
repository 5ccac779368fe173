package board

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Order ranks priorities for sorting; unknown values rank as medium.
func (p Priority) Order() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 2
	}
}

type PriorityLevel struct {
	Value Priority `json:"value"`
	Label string   `json:"label"`
	Order int      `json:"order"`
}

func PriorityLevels() []PriorityLevel {
	levels := []PriorityLevel{
		{Value: PriorityLow, Label: "Low"},
		{Value: PriorityMedium, Label: "Medium"},
		{Value: PriorityHigh, Label: "High"},
		{Value: PriorityCritical, Label: "Critical"},
	}
	for i := range levels {
		levels[i].Order = levels[i].Value.Order()
	}
	return levels
}

type Tag struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type Card struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Tags        []Tag    `json:"tags"`
	Priority    Priority `json:"priority"`
	CreatedAt   int64    `json:"createdAt"`
}

type Column struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Cards []*Card `json:"cards"`
}

// Board is persisted as-is; the order of Columns and of each column's Cards
// is the display order.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   []*Column `json:"columns"`
	CreatedAt int64     `json:"createdAt"`
}

// CardDetails carries the optional fields of a new card.
type CardDetails struct {
	Description string
	DueDate     *string
	Tags        []Tag
	Priority    Priority
}

// CardPatch updates only the non-nil fields of a card.
type CardPatch struct {
	Title       *string
	Description *string
	DueDate     **string
	Tags        *[]Tag
	Priority    *Priority
}

func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	if c.DueDate != nil {
		d := *c.DueDate
		cp.DueDate = &d
	}
	cp.Tags = append([]Tag{}, c.Tags...)
	return &cp
}

func (c *Column) Clone() *Column {
	if c == nil {
		return nil
	}
	cp := &Column{ID: c.ID, Title: c.Title, Cards: make([]*Card, len(c.Cards))}
	for i, card := range c.Cards {
		cp.Cards[i] = card.Clone()
	}
	return cp
}

// Clone returns a deep copy so that mutations never reach the caller's board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	cp := &Board{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt, Columns: make([]*Column, len(b.Columns))}
	for i, col := range b.Columns {
		cp.Columns[i] = col.Clone()
	}
	return cp
}

// normalize drops null entries and replaces nil slices so the stored JSON
// always carries arrays.
func (b *Board) normalize() {
	columns := make([]*Column, 0, len(b.Columns))
	for _, col := range b.Columns {
		if col == nil {
			continue
		}
		cards := make([]*Card, 0, len(col.Cards))
		for _, card := range col.Cards {
			if card == nil {
				continue
			}
			if card.Tags == nil {
				card.Tags = []Tag{}
			}
			if card.Priority == "" {
				card.Priority = PriorityMedium
			}
			cards = append(cards, card)
		}
		col.Cards = cards
		columns = append(columns, col)
	}
	b.Columns = columns
}

type Preset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

func Presets() []Preset {
	return []Preset{
		{ID: "simple", Name: "Simple Kanban", Description: "Basic 3-column board", Columns: []string{"To Do", "In Progress", "Done"}},
		{ID: "development", Name: "Development Workflow", Description: "Full software development lifecycle", Columns: []string{"Backlog", "To Do", "In Progress", "Review", "Done"}},
		{ID: "personal", Name: "Personal Tasks", Description: "Organize your personal to-dos", Columns: []string{"To Do", "Doing", "Done", "Archived"}},
		{ID: "agile", Name: "Agile Sprint", Description: "Sprint planning and tracking", Columns: []string{"Sprint Backlog", "In Progress", "Testing", "Done"}},
		{ID: "custom", Name: "Start from Scratch", Description: "Empty board to customize", Columns: []string{}},
	}
}

func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type BoardListResponse struct {
	Boards []*Board `json:"boards"`
}
