package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ItemType discriminates the canvas item variants.
type ItemType string

const (
	TypeProject ItemType = "project"
	TypeEntity  ItemType = "entity"
	TypeNote    ItemType = "note"
	TypeChart   ItemType = "chart"
)

// Valid reports whether t names a known variant.
func (t ItemType) Valid() bool {
	switch t {
	case TypeProject, TypeEntity, TypeNote, TypeChart:
		return true
	}
	return false
}

// SelectOptions is the closed option set for select fields
// (project.data.field2 and entity.data.field2).
var SelectOptions = []string{"Option A", "Option B", "Option C"}

// Document is the root canvas state for one conversation.
type Document struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Story       string  `json:"story"`
	Items       []*Item `json:"items"`
}

// NewDocument creates an empty canvas.
func NewDocument() *Document {
	return &Document{Items: []*Item{}}
}

// Item is one typed entry in the canvas.
type Item struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	Subtitle string   `json:"subtitleOrDescription"`
	Data     ItemData `json:"data"`
}

// ItemData is the variant payload of an Item. The interface is sealed:
// exactly the four pointer types below implement it, so a type switch over
// them is exhaustive.
type ItemData interface {
	itemData()
}

// ProjectData is the payload of a project item.
type ProjectData struct {
	Field1 string          `json:"field1"`
	Field2 string          `json:"field2"`
	Field3 string          `json:"field3,omitempty"`
	Field4 []ChecklistItem `json:"field4"`
}

// ChecklistItem is one entry of a project checklist. Proposed entries were
// created by the agent and await user acceptance.
type ChecklistItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Done     bool   `json:"done"`
	Proposed bool   `json:"proposed"`
}

// EntityData is the payload of an entity item. Field3 is the selected tag
// set and stays a subset of Field3Options.
type EntityData struct {
	Field1        string   `json:"field1"`
	Field2        string   `json:"field2"`
	Field3        []string `json:"field3"`
	Field3Options []string `json:"field3_options"`
}

// NoteData is the payload of a note item.
type NoteData struct {
	Field1 string `json:"field1"`
}

// ChartData is the payload of a chart item.
type ChartData struct {
	Field1 []Metric `json:"field1"`
}

// Metric is one labeled chart value. A nil Value means the value is absent;
// present values are within [0, 100].
type Metric struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Value *float64 `json:"value,omitempty"`
}

func (*ProjectData) itemData() {}
func (*EntityData) itemData()  {}
func (*NoteData) itemData()    {}
func (*ChartData) itemData()   {}

// newItemData returns the default-initialized payload for a variant.
func newItemData(t ItemType) ItemData {
	switch t {
	case TypeProject:
		return &ProjectData{Field4: []ChecklistItem{}}
	case TypeEntity:
		return &EntityData{Field3: []string{}, Field3Options: []string{}}
	case TypeNote:
		return &NoteData{}
	case TypeChart:
		return &ChartData{Field1: []Metric{}}
	}
	return nil
}

// newID mints a fresh identifier. IDs are never reused within a document.
func newID() string {
	return uuid.NewString()
}

// UnmarshalJSON decodes an Item, dispatching the data payload on the type
// tag.
func (it *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Type     ItemType        `json:"type"`
		Name     string          `json:"name"`
		Subtitle string          `json:"subtitleOrDescription"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	if !raw.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, raw.Type)
	}

	it.ID = raw.ID
	it.Type = raw.Type
	it.Name = raw.Name
	it.Subtitle = raw.Subtitle
	it.Data = newItemData(raw.Type)
	if len(raw.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw.Data, it.Data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", raw.Type, err)
	}
	return nil
}

// Snapshot returns an independent deep copy for observers. Mutating the
// snapshot never affects the live document.
func (d *Document) Snapshot() *Document {
	out := &Document{
		Title:       d.Title,
		Description: d.Description,
		Story:       d.Story,
		Items:       make([]*Item, len(d.Items)),
	}
	for i, it := range d.Items {
		out.Items[i] = it.clone()
	}
	return out
}

func (it *Item) clone() *Item {
	cp := &Item{
		ID:       it.ID,
		Type:     it.Type,
		Name:     it.Name,
		Subtitle: it.Subtitle,
	}
	switch data := it.Data.(type) {
	case *ProjectData:
		d := *data
		d.Field4 = append([]ChecklistItem(nil), data.Field4...)
		cp.Data = &d
	case *EntityData:
		d := *data
		d.Field3 = append([]string(nil), data.Field3...)
		d.Field3Options = append([]string(nil), data.Field3Options...)
		cp.Data = &d
	case *NoteData:
		d := *data
		cp.Data = &d
	case *ChartData:
		d := ChartData{Field1: make([]Metric, len(data.Field1))}
		for i, m := range data.Field1 {
			mc := m
			if m.Value != nil {
				v := *m.Value
				mc.Value = &v
			}
			d.Field1[i] = mc
		}
		cp.Data = &d
	}
	return cp
}
