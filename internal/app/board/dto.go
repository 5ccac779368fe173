package board

import (
	"bytes"

	"github.com/goccy/go-json"
)

const legacyTagColor = "blue"

// TagInput accepts both the object form {"label","color"} and the legacy bare
// string form, which becomes a blue tag.
type TagInput Tag

func (t *TagInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*t = TagInput{Label: label, Color: legacyTagColor}
		return nil
	}
	var tag Tag
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	*t = TagInput(tag)
	return nil
}

func tagsFromInput(in []TagInput) []Tag {
	tags := make([]Tag, 0, len(in))
	for _, t := range in {
		if t.Label == "" {
			continue
		}
		if t.Color == "" {
			t.Color = legacyTagColor
		}
		tags = append(tags, Tag(t))
	}
	return tags
}

// NullableString tells an absent field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type CreateBoardRequest struct {
	Name   string `json:"name"`
	Preset string `json:"preset"`
}

type RenameBoardRequest struct {
	Name string `json:"name"`
}

type ColumnRequest struct {
	Title string `json:"title"`
}

type CreateCardRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *string    `json:"dueDate"`
	Tags        []TagInput `json:"tags"`
	Priority    Priority   `json:"priority" binding:"omitempty,oneof=low medium high critical"`
}

func (r CreateCardRequest) Details() CardDetails {
	return CardDetails{
		Description: r.Description,
		DueDate:     r.DueDate,
		Tags:        tagsFromInput(r.Tags),
		Priority:    r.Priority,
	}
}

type UpdateCardRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	DueDate     NullableString `json:"dueDate"`
	Tags        *[]TagInput    `json:"tags"`
	Priority    *Priority      `json:"priority" binding:"omitempty,oneof=low medium high critical"`
}

func (r UpdateCardRequest) Patch() CardPatch {
	patch := CardPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
	}
	if r.DueDate.Set {
		due := r.DueDate.Value
		patch.DueDate = &due
	}
	if r.Tags != nil {
		tags := tagsFromInput(*r.Tags)
		patch.Tags = &tags
	}
	return patch
}

// MoveRequest names the dragged card and the drop target, which is either a
// card id or a column id.
type MoveRequest struct {
	ActiveID string `json:"active_id" binding:"required"`
	OverID   string `json:"over_id"`
}

type LastBoardRequest struct {
	BoardID string `json:"board_id" binding:"required"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
