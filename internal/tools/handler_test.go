package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/storyforge/storyforge/internal/canvas"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
)

func newTestHandler(t *testing.T) (*Handler, context.Context, *canvas.Document) {
	t.Helper()
	h := NewHandler(log.NewNop())
	sess := &session.Session{Canvas: canvas.NewDocument()}
	ctx := session.NewContext(context.Background(), sess)
	return h, ctx, sess.Canvas
}

func createItem(t *testing.T, h *Handler, ctx context.Context, typ string) string {
	t.Helper()
	out, err := h.CreateItem(ctx, CreateItemInput{Type: typ})
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", typ, err)
	}
	// Result string ends with "... id <uuid>".
	fields := strings.Fields(out)
	return fields[len(fields)-1]
}

func TestHandlerRequiresSession(t *testing.T) {
	h := NewHandler(log.NewNop())
	_, err := h.CreateItem(context.Background(), CreateItemInput{Type: "note"})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestResultErrorPolicy(t *testing.T) {
	h := NewHandler(log.NewNop())

	t.Run("operation errors become text", func(t *testing.T) {
		out, err := h.result("deleteItem", "", canvas.ErrNotFound)
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if !strings.HasPrefix(out, "error: ") {
			t.Errorf("out = %q", out)
		}
	})

	t.Run("missing session stays a Go error", func(t *testing.T) {
		_, err := h.result("deleteItem", "", ErrNoSession)
		if !errors.Is(err, ErrNoSession) {
			t.Errorf("err = %v, want ErrNoSession", err)
		}
	})

	t.Run("success passes through", func(t *testing.T) {
		out, err := h.result("deleteItem", "deleted item x", nil)
		if err != nil || out != "deleted item x" {
			t.Errorf("out=%q err=%v", out, err)
		}
	})
}

func TestItemHandlers(t *testing.T) {
	h, ctx, doc := newTestHandler(t)
	id := createItem(t, h, ctx, "note")

	if _, err := h.SetItemName(ctx, SetItemNameInput{ItemID: id, Name: "Ideas"}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.SetItemSubtitle(ctx, SetItemSubtitleInput{ItemID: id, Subtitle: "scratch"}); err != nil {
		t.Fatal(err)
	}
	if doc.Items[0].Name != "Ideas" || doc.Items[0].Subtitle != "scratch" {
		t.Errorf("item = %+v", doc.Items[0])
	}

	if _, err := h.SetGlobalTitle(ctx, SetGlobalTitleInput{Title: "T"}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.SetGlobalDescription(ctx, SetGlobalDescriptionInput{Description: "D"}); err != nil {
		t.Fatal(err)
	}
	if doc.Title != "T" || doc.Description != "D" {
		t.Errorf("globals = %q %q", doc.Title, doc.Description)
	}

	if _, err := h.DeleteItem(ctx, DeleteItemInput{ItemID: id}); err != nil {
		t.Fatal(err)
	}
	if len(doc.Items) != 0 {
		t.Errorf("items = %d", len(doc.Items))
	}

	// Deleting again surfaces the canvas error to the caller.
	if _, err := h.DeleteItem(ctx, DeleteItemInput{ItemID: id}); !errors.Is(err, canvas.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNoteHandlers(t *testing.T) {
	h, ctx, doc := newTestHandler(t)
	id := createItem(t, h, ctx, "note")

	if _, err := h.SetNoteField1(ctx, SetNoteField1Input{ItemID: id, Value: "a"}); err != nil {
		t.Fatal(err)
	}
	nl := true
	if _, err := h.AppendNoteField1(ctx, AppendNoteField1Input{ItemID: id, Value: "b", WithNewline: &nl}); err != nil {
		t.Fatal(err)
	}
	if got := doc.Items[0].Data.(*canvas.NoteData).Field1; got != "a\nb" {
		t.Errorf("field1 = %q", got)
	}
	if _, err := h.ClearNoteField1(ctx, ClearNoteField1Input{ItemID: id}); err != nil {
		t.Fatal(err)
	}
}

func TestProjectHandlers(t *testing.T) {
	h, ctx, doc := newTestHandler(t)
	id := createItem(t, h, ctx, "project")

	if _, err := h.SetProjectField2(ctx, SetProjectField2Input{ItemID: id, Value: "Option A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.SetProjectField3(ctx, SetProjectField3Input{ItemID: id, Date: "2026-01-15"}); err != nil {
		t.Fatal(err)
	}

	text := "ship it"
	if _, err := h.AddProjectChecklistItem(ctx, AddProjectChecklistItemInput{ItemID: id, Text: &text}); err != nil {
		t.Fatal(err)
	}
	data := doc.Items[0].Data.(*canvas.ProjectData)
	if len(data.Field4) != 1 || !data.Field4[0].Proposed {
		t.Fatalf("checklist = %+v", data.Field4)
	}

	done := true
	if _, err := h.SetProjectChecklistItem(ctx, SetProjectChecklistItemInput{
		ItemID: id, ChecklistItemID: data.Field4[0].ID, Done: &done,
	}); err != nil {
		t.Fatal(err)
	}
	if !data.Field4[0].Done {
		t.Error("done not set")
	}

	if _, err := h.RemoveProjectChecklistItem(ctx, RemoveProjectChecklistItemInput{
		ItemID: id, ChecklistItemID: data.Field4[0].ID,
	}); err != nil {
		t.Fatal(err)
	}
	if len(data.Field4) != 0 {
		t.Errorf("checklist = %+v", data.Field4)
	}
}

func TestEntityHandlers(t *testing.T) {
	h, ctx, doc := newTestHandler(t)
	id := createItem(t, h, ctx, "entity")

	if _, err := h.AddEntityField3(ctx, AddEntityField3Input{ItemID: id, Value: "noir"}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.RemoveEntityField3(ctx, RemoveEntityField3Input{ItemID: id, Value: "noir"}); err != nil {
		t.Fatal(err)
	}
	data := doc.Items[0].Data.(*canvas.EntityData)
	if len(data.Field3) != 0 || len(data.Field3Options) != 1 {
		t.Errorf("field3=%v options=%v", data.Field3, data.Field3Options)
	}

	if _, err := h.SetEntityField2(ctx, SetEntityField2Input{ItemID: id, Value: "bogus"}); !errors.Is(err, canvas.ErrInvalidEnum) {
		t.Errorf("err = %v, want ErrInvalidEnum", err)
	}
}

func TestChartHandlers(t *testing.T) {
	h, ctx, doc := newTestHandler(t)
	id := createItem(t, h, ctx, "chart")

	v := 55.0
	if _, err := h.AddChartField1(ctx, AddChartField1Input{ItemID: id, Label: "pace", Value: &v}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.SetChartField1Value(ctx, SetChartField1ValueInput{ItemID: id, Index: 0, Value: 80}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.SetChartField1Value(ctx, SetChartField1ValueInput{ItemID: id, Index: 0, Value: 200}); !errors.Is(err, canvas.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	if _, err := h.ClearChartField1Value(ctx, ClearChartField1ValueInput{ItemID: id, Index: 0}); err != nil {
		t.Fatal(err)
	}
	data := doc.Items[0].Data.(*canvas.ChartData)
	if data.Field1[0].Value != nil {
		t.Error("value not cleared")
	}
	if _, err := h.RemoveChartField1(ctx, RemoveChartField1Input{ItemID: id, Index: 3}); !errors.Is(err, canvas.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestToolNameCatalog(t *testing.T) {
	names := ToolNames()
	if len(names) != len(backendToolNames)+len(frontendToolNames) {
		t.Fatalf("len = %d", len(names))
	}

	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate tool name %q", n)
		}
		seen[n] = true
	}

	if !IsFrontendTool("selectAngle") || !IsFrontendTool("generateStoryAndConfirm") {
		t.Error("frontend tools not classified")
	}
	if IsFrontendTool("createItem") {
		t.Error("backend tool classified as frontend")
	}
}
