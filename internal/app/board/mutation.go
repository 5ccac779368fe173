package board

import (
	"strings"

	"kanbanify/internal/apperr"
)

// The helpers below never modify their input: each returns a fresh board and
// whether anything changed. Callers persist the result with SaveBoard.

func AddColumn(board *Board, column *Column) *Board {
	out := board.Clone()
	out.Columns = append(out.Columns, column.Clone())
	return out
}

// ApplyPreset appends one column per preset title, built by newColumn.
func ApplyPreset(board *Board, preset Preset, newColumn func(title string) (*Column, error)) (*Board, error) {
	out := board.Clone()
	for _, title := range preset.Columns {
		col, err := newColumn(title)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, col)
	}
	return out, nil
}

func RenameColumn(board *Board, columnID, title string) (*Board, bool, error) {
	if err := apperr.ValidateString(title, "Column title"); err != nil {
		return nil, false, err
	}
	out := board.Clone()
	col, ok := FindColumn(out, columnID)
	if !ok {
		return board, false, nil
	}
	col.Title = strings.TrimSpace(title)
	return out, true, nil
}

// DeleteColumn drops the column together with every card it holds.
func DeleteColumn(board *Board, columnID string) (*Board, bool) {
	out := board.Clone()
	kept := out.Columns[:0]
	for _, col := range out.Columns {
		if col.ID != columnID {
			kept = append(kept, col)
		}
	}
	if len(kept) == len(board.Columns) {
		return board, false
	}
	out.Columns = kept
	return out, true
}

func AddCard(board *Board, columnID string, card *Card) (*Board, bool) {
	out := board.Clone()
	col, ok := FindColumn(out, columnID)
	if !ok {
		return board, false
	}
	col.Cards = append(col.Cards, card.Clone())
	return out, true
}

func UpdateCard(board *Board, columnID, cardID string, patch CardPatch) (*Board, bool, error) {
	if patch.Title != nil {
		if err := apperr.ValidateString(*patch.Title, "Card title"); err != nil {
			return nil, false, err
		}
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, false, apperr.Validation("priority %q is not one of low, medium, high, critical", *patch.Priority)
	}

	out := board.Clone()
	col, ok := FindColumn(out, columnID)
	if !ok {
		return board, false, nil
	}
	var card *Card
	for _, c := range col.Cards {
		if c.ID == cardID {
			card = c
			break
		}
	}
	if card == nil {
		return board, false, nil
	}

	if patch.Title != nil {
		card.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	if patch.DueDate != nil {
		card.DueDate = *patch.DueDate
	}
	if patch.Tags != nil {
		card.Tags = append([]Tag{}, (*patch.Tags)...)
	}
	if patch.Priority != nil {
		card.Priority = *patch.Priority
	}
	return out, true, nil
}

func DeleteCard(board *Board, columnID, cardID string) (*Board, bool) {
	out := board.Clone()
	col, ok := FindColumn(out, columnID)
	if !ok {
		return board, false
	}
	kept := col.Cards[:0]
	for _, c := range col.Cards {
		if c.ID != cardID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(col.Cards) {
		return board, false
	}
	col.Cards = kept
	return out, true
}
