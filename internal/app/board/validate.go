package board

import "kanbanify/internal/apperr"

// Validate checks a client-supplied board before it replaces the stored one:
// every column and card is present and titled, ids are unique across the
// whole board, and priorities are known. An empty priority reads as medium.
func (b *Board) Validate() error {
	if err := apperr.ValidateString(b.Name, "Board name"); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for i, col := range b.Columns {
		if col == nil {
			return apperr.Validation("column %d is null", i)
		}
		if col.ID == "" {
			return apperr.Validation("column %d has no id", i)
		}
		if seen[col.ID] {
			return apperr.Validation("duplicate id %q", col.ID)
		}
		seen[col.ID] = true
		if err := apperr.ValidateString(col.Title, "Column title"); err != nil {
			return err
		}
		for j, card := range col.Cards {
			if card == nil {
				return apperr.Validation("card %d of column %q is null", j, col.ID)
			}
			if card.ID == "" {
				return apperr.Validation("card %d of column %q has no id", j, col.ID)
			}
			if seen[card.ID] {
				return apperr.Validation("duplicate id %q", card.ID)
			}
			seen[card.ID] = true
			if err := apperr.ValidateString(card.Title, "Card title"); err != nil {
				return err
			}
			if card.Priority != "" && !card.Priority.Valid() {
				return apperr.Validation("priority %q is not one of low, medium, high, critical", card.Priority)
			}
		}
	}
	return nil
}
