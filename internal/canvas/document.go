package canvas

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// item returns the item with the given id.
func (d *Document) item(id string) (*Item, error) {
	for _, it := range d.Items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// typedData resolves an item and checks its variant in one step.
func (d *Document) typedData(id string, want ItemType) (*Item, error) {
	it, err := d.item(id)
	if err != nil {
		return nil, err
	}
	if it.Type != want {
		return nil, fmt.Errorf("%w: %s is %s, want %s", ErrTypeMismatch, id, it.Type, want)
	}
	return it, nil
}

func (d *Document) project(id string) (*ProjectData, error) {
	it, err := d.typedData(id, TypeProject)
	if err != nil {
		return nil, err
	}
	return it.Data.(*ProjectData), nil
}

func (d *Document) entity(id string) (*EntityData, error) {
	it, err := d.typedData(id, TypeEntity)
	if err != nil {
		return nil, err
	}
	return it.Data.(*EntityData), nil
}

func (d *Document) note(id string) (*NoteData, error) {
	it, err := d.typedData(id, TypeNote)
	if err != nil {
		return nil, err
	}
	return it.Data.(*NoteData), nil
}

func (d *Document) chart(id string) (*ChartData, error) {
	it, err := d.typedData(id, TypeChart)
	if err != nil {
		return nil, err
	}
	return it.Data.(*ChartData), nil
}

// CreateItem appends a new item of the given type. An empty name gets a
// per-type default.
func (d *Document) CreateItem(t ItemType, name string) (*Item, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	if name == "" {
		name = "New " + strings.ToUpper(string(t)[:1]) + string(t)[1:]
	}
	it := &Item{
		ID:   newID(),
		Type: t,
		Name: name,
		Data: newItemData(t),
	}
	d.Items = append(d.Items, it)
	return it, nil
}

// DeleteItem removes an item by id.
func (d *Document) DeleteItem(id string) error {
	for i, it := range d.Items {
		if it.ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// SetItemName renames an item.
func (d *Document) SetItemName(id, name string) error {
	it, err := d.item(id)
	if err != nil {
		return err
	}
	it.Name = name
	return nil
}

// SetItemSubtitle sets an item's subtitle/description.
func (d *Document) SetItemSubtitle(id, subtitle string) error {
	it, err := d.item(id)
	if err != nil {
		return err
	}
	it.Subtitle = subtitle
	return nil
}

// SetTitle sets the global canvas title.
func (d *Document) SetTitle(title string) {
	d.Title = title
}

// SetDescription sets the global canvas description.
func (d *Document) SetDescription(description string) {
	d.Description = description
}

// ConfirmStory writes the confirmed story together with its title and
// description. All three land atomically; the caller validated them.
func (d *Document) ConfirmStory(story, title, description string) {
	d.Story = story
	d.Title = title
	d.Description = description
}

// SetNoteField1 overwrites a note's content.
func (d *Document) SetNoteField1(id, value string) error {
	n, err := d.note(id)
	if err != nil {
		return err
	}
	n.Field1 = value
	return nil
}

// AppendNoteField1 appends to a note's content. With withNewline set, the
// appended text is prefixed with a newline unless the note is empty.
func (d *Document) AppendNoteField1(id, value string, withNewline bool) error {
	n, err := d.note(id)
	if err != nil {
		return err
	}
	if withNewline && n.Field1 != "" {
		n.Field1 += "\n" + value
	} else {
		n.Field1 += value
	}
	return nil
}

// ClearNoteField1 empties a note's content. Clearing an empty note is a
// no-op.
func (d *Document) ClearNoteField1(id string) error {
	n, err := d.note(id)
	if err != nil {
		return err
	}
	n.Field1 = ""
	return nil
}

func validSelectOption(v string) bool {
	return slices.Contains(SelectOptions, v)
}

// SetProjectField1 overwrites a project's text field.
func (d *Document) SetProjectField1(id, value string) error {
	p, err := d.project(id)
	if err != nil {
		return err
	}
	p.Field1 = value
	return nil
}

// SetProjectField2 sets a project's select field to one of SelectOptions.
func (d *Document) SetProjectField2(id, value string) error {
	p, err := d.project(id)
	if err != nil {
		return err
	}
	if !validSelectOption(value) {
		return fmt.Errorf("%w: %q", ErrInvalidEnum, value)
	}
	p.Field2 = value
	return nil
}

// SetProjectField3 sets a project's date field from a YYYY-MM-DD string.
func (d *Document) SetProjectField3(id, date string) error {
	p, err := d.project(id)
	if err != nil {
		return err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	p.Field3 = date
	return nil
}

// ClearProjectField3 unsets a project's date field. Clearing an absent date
// is a no-op.
func (d *Document) ClearProjectField3(id string) error {
	p, err := d.project(id)
	if err != nil {
		return err
	}
	p.Field3 = ""
	return nil
}

// AddProjectChecklistItem appends a checklist entry and returns it.
func (d *Document) AddProjectChecklistItem(id, text string, proposed bool) (*ChecklistItem, error) {
	p, err := d.project(id)
	if err != nil {
		return nil, err
	}
	p.Field4 = append(p.Field4, ChecklistItem{
		ID:       newID(),
		Text:     text,
		Proposed: proposed,
	})
	return &p.Field4[len(p.Field4)-1], nil
}

// checklistIndex resolves a checklist reference: first by entry id, then as
// a 0-based positional index.
func checklistIndex(p *ProjectData, ref string) (int, error) {
	for i := range p.Field4 {
		if p.Field4[i].ID == ref {
			return i, nil
		}
	}
	if idx, err := strconv.Atoi(ref); err == nil && idx >= 0 && idx < len(p.Field4) {
		return idx, nil
	}
	return 0, fmt.Errorf("%w: checklist item %s", ErrNotFound, ref)
}

// SetProjectChecklistItem partially updates a checklist entry. Nil fields
// stay unchanged.
func (d *Document) SetProjectChecklistItem(id, ref string, text *string, done *bool) error {
	p, err := d.project(id)
	if err != nil {
		return err
	}
	i, err := checklistIndex(p, ref)
	if err != nil {
		return err
	}
	if text != nil {
		p.Field4[i].Text = *text
	}
	if done != nil {
		p.Field4[i].Done = *done
	}
	return nil
}

// RemoveProjectChecklistItem removes a checklist entry.
func (d *Document) RemoveProjectChecklistItem(id, ref string) error {
	p, err := d.project(id)
	if err != nil {
		return err
	}
	i, err := checklistIndex(p, ref)
	if err != nil {
		return err
	}
	p.Field4 = append(p.Field4[:i], p.Field4[i+1:]...)
	return nil
}

// SetEntityField1 overwrites an entity's first text field.
func (d *Document) SetEntityField1(id, value string) error {
	e, err := d.entity(id)
	if err != nil {
		return err
	}
	e.Field1 = value
	return nil
}

// SetEntityField2 sets an entity's select field to one of SelectOptions.
func (d *Document) SetEntityField2(id, value string) error {
	e, err := d.entity(id)
	if err != nil {
		return err
	}
	if !validSelectOption(value) {
		return fmt.Errorf("%w: %q", ErrInvalidEnum, value)
	}
	e.Field2 = value
	return nil
}

// AddEntityField3 adds a tag to the selected set. Unknown tags extend the
// option list first, keeping the selection a subset of the options.
func (d *Document) AddEntityField3(id, tag string) error {
	e, err := d.entity(id)
	if err != nil {
		return err
	}
	if !slices.Contains(e.Field3Options, tag) {
		e.Field3Options = append(e.Field3Options, tag)
	}
	if !slices.Contains(e.Field3, tag) {
		e.Field3 = append(e.Field3, tag)
	}
	return nil
}

// RemoveEntityField3 removes a tag from the selected set only; the option
// list keeps it. Removing an unselected tag is a no-op.
func (d *Document) RemoveEntityField3(id, tag string) error {
	e, err := d.entity(id)
	if err != nil {
		return err
	}
	if i := slices.Index(e.Field3, tag); i >= 0 {
		e.Field3 = append(e.Field3[:i], e.Field3[i+1:]...)
	}
	return nil
}

func validMetricValue(v float64) bool {
	return v >= 0 && v <= 100
}

// AddChartField1 appends a metric. A nil value means the metric starts
// without one.
func (d *Document) AddChartField1(id, label string, value *float64) (*Metric, error) {
	c, err := d.chart(id)
	if err != nil {
		return nil, err
	}
	if value != nil && !validMetricValue(*value) {
		return nil, fmt.Errorf("%w: %g not in [0, 100]", ErrOutOfRange, *value)
	}
	m := Metric{ID: newID(), Label: label}
	if value != nil {
		v := *value
		m.Value = &v
	}
	c.Field1 = append(c.Field1, m)
	return &c.Field1[len(c.Field1)-1], nil
}

// metricAt validates a 0-based metric index.
func metricAt(c *ChartData, index int) (*Metric, error) {
	if index < 0 || index >= len(c.Field1) {
		return nil, fmt.Errorf("%w: metric %d of %d", ErrIndexOutOfRange, index, len(c.Field1))
	}
	return &c.Field1[index], nil
}

// SetChartField1Label renames a metric.
func (d *Document) SetChartField1Label(id string, index int, label string) error {
	c, err := d.chart(id)
	if err != nil {
		return err
	}
	m, err := metricAt(c, index)
	if err != nil {
		return err
	}
	m.Label = label
	return nil
}

// SetChartField1Value sets a metric's value, which must be within [0, 100].
func (d *Document) SetChartField1Value(id string, index int, value float64) error {
	c, err := d.chart(id)
	if err != nil {
		return err
	}
	m, err := metricAt(c, index)
	if err != nil {
		return err
	}
	if !validMetricValue(value) {
		return fmt.Errorf("%w: %g not in [0, 100]", ErrOutOfRange, value)
	}
	v := value
	m.Value = &v
	return nil
}

// ClearChartField1Value unsets a metric's value, keeping the label.
func (d *Document) ClearChartField1Value(id string, index int) error {
	c, err := d.chart(id)
	if err != nil {
		return err
	}
	m, err := metricAt(c, index)
	if err != nil {
		return err
	}
	m.Value = nil
	return nil
}

// RemoveChartField1 removes a metric by index.
func (d *Document) RemoveChartField1(id string, index int) error {
	c, err := d.chart(id)
	if err != nil {
		return err
	}
	if _, err := metricAt(c, index); err != nil {
		return err
	}
	c.Field1 = append(c.Field1[:index], c.Field1[index+1:]...)
	return nil
}
