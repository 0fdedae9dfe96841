package keyboard

import "testing"

func TestInlineButtonsOnePerRow(t *testing.T) {
	markup := InlineButtons([]InlineBtn{
		{Text: "A", Unique: "k", Data: "a"},
		{Text: "B", Unique: "k", Data: "b"},
	})
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	for i, row := range markup.InlineKeyboard {
		if len(row) != 1 {
			t.Fatalf("row %d has %d buttons, want 1", i, len(row))
		}
	}
}

func TestInlineButtonsNPerRow(t *testing.T) {
	btns := []InlineBtn{
		{Text: "A", Unique: "k", Data: "a"},
		{Text: "B", Unique: "k", Data: "b"},
		{Text: "C", Unique: "k", Data: "c"},
	}
	markup := InlineButtonsNPerRow(btns, 2)
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[1]) != 1 {
		t.Fatalf("row sizes = %d,%d", len(markup.InlineKeyboard[0]), len(markup.InlineKeyboard[1]))
	}
	if markup.InlineKeyboard[0][0].Text != "A" {
		t.Fatalf("first button text = %q", markup.InlineKeyboard[0][0].Text)
	}
}

func TestInlineButtonsNPerRowSingleRow(t *testing.T) {
	btns := []InlineBtn{
		{Text: "Hertz", Unique: "provider", Data: "hertz"},
		{Text: "Digital Ocean", Unique: "provider", Data: "digitalocean"},
	}
	markup := InlineButtonsNPerRow(btns, len(btns))
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected one row of two, got %v", markup.InlineKeyboard)
	}
}
